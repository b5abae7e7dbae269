// Package willumailme provides a Go client for the WillUMailMe mail
// service.
//
// The client holds the same shared secret and expected key the service was
// provisioned with, and mints a fresh encrypted API token for every request
// it makes. Tokens pack an AES-256-GCM ciphertext, nonce, and PBKDF2 salt
// into one opaque header value; see the internal apikey package for the
// scheme.
//
// Basic usage:
//
//	client, err := willumailme.New("http://localhost:8080",
//	    []byte(os.Getenv("API_SHARED_SECRET")),
//	    []byte(os.Getenv("API_EXPECTED_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = client.SendMail(ctx, &willumailme.Mail{
//	    To:      []string{"alice@example.com"},
//	    Subject: "hello",
//	    Body:    "will you mail me?",
//	})
//
// For end-to-end encrypted submissions, use [Client.SendMailSealed], which
// seals the message to the service's ML-KEM-768 public key so the body is
// opaque to everything between the client and the service process.
package willumailme
