// Command mailerd runs the authenticated mail-sending service.
//
// Every endpoint requires an encrypted API token in the X-Api-Key header.
// Configuration comes from the environment (optionally an env file); the
// process refuses to start on any invalid setting.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/leafstreamcreation/WillUMailMe/internal/config"
	"github.com/leafstreamcreation/WillUMailMe/internal/envelope"
	"github.com/leafstreamcreation/WillUMailMe/internal/mailer"
)

func main() {
	envFile := flag.String("env", ".env", "Env file path (missing file is ignored)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	scheme, err := cfg.Scheme()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	m, err := mailer.New(cfg.SMTPAddr(), cfg.From, cfg.SMTPUsername, cfg.SMTPPassword)
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	var keypair *envelope.Keypair
	if len(cfg.SealSecretKey) > 0 {
		keypair, err = envelope.KeypairFromSecretKey(cfg.SealSecretKey)
		if err != nil {
			log.Fatalf("configuration: %v", err)
		}
		log.Printf("Sealed submissions enabled")
	}

	srv := NewServer(scheme, m, keypair)

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	log.Printf("Listening on %s, relaying via %s", cfg.ListenAddr, cfg.SMTPAddr())
	log.Fatal(httpSrv.ListenAndServe())
}
