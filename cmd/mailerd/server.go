package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/leafstreamcreation/WillUMailMe/internal/apikey"
	"github.com/leafstreamcreation/WillUMailMe/internal/envelope"
	"github.com/leafstreamcreation/WillUMailMe/internal/mailer"
)

// maxBodyBytes caps mail submission bodies. Sealed envelopes carry
// a fixed ~1.5 KB of KEM overhead on top of the message itself.
const maxBodyBytes = 1 << 20

// sender relays one composed message. Satisfied by *mailer.Mailer.
type sender interface {
	Send(*mailer.Message) error
}

// Server holds the request handlers and their collaborators.
type Server struct {
	scheme  *apikey.Scheme
	mailer  sender
	keypair *envelope.Keypair // nil disables sealed submissions
}

// NewServer creates a Server. keypair may be nil to disable sealed
// submissions.
func NewServer(scheme *apikey.Scheme, m sender, keypair *envelope.Keypair) *Server {
	return &Server{scheme: scheme, mailer: m, keypair: keypair}
}

// Routes registers all handlers behind the API-key middleware.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.requireKey(s.handleHealth))
	mux.HandleFunc("GET /pubkey", s.requireKey(s.handlePubkey))
	mux.HandleFunc("POST /mail", s.requireKey(s.handleSendMail))
	return mux
}

// requireKey returns an http.HandlerFunc that requires a valid API token in
// the X-Api-Key header. All verification failures produce the same 403: the
// internal reject reason (malformed, authentication failed, mismatch) is
// logged but never surfaced, so the endpoint cannot be used as a
// decryption oracle.
func (s *Server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Api-Key")
		if token == "" {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}

		if err := s.scheme.Verify(token); err != nil {
			log.Printf("token rejected from %s: %v", r.RemoteAddr, err)
			http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePubkey serves the ML-KEM-768 public key clients seal to.
func (s *Server) handlePubkey(w http.ResponseWriter, r *http.Request) {
	if s.keypair == nil {
		http.Error(w, `{"error":"sealed submissions disabled"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"algs":   envelope.Algs,
		"pubkey": envelope.ToBase64URL(s.keypair.PublicKey),
	})
}

// mailRequest is the POST /mail body. Either the plain fields or a sealed
// envelope must be present, not both.
type mailRequest struct {
	To      []string           `json:"to,omitempty"`
	Subject string             `json:"subject,omitempty"`
	Body    string             `json:"body,omitempty"`
	Sealed  *envelope.Envelope `json:"sealed,omitempty"`
}

func (s *Server) handleSendMail(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req mailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	msg := &mailer.Message{To: req.To, Subject: req.Subject, Body: req.Body}

	if req.Sealed != nil {
		if s.keypair == nil {
			http.Error(w, `{"error":"sealed submissions disabled"}`, http.StatusBadRequest)
			return
		}
		plaintext, err := envelope.Open(req.Sealed, s.keypair)
		if err != nil {
			log.Printf("sealed submission rejected from %s: %v", r.RemoteAddr, err)
			http.Error(w, `{"error":"invalid sealed payload"}`, http.StatusBadRequest)
			return
		}
		var inner struct {
			To      []string `json:"to"`
			Subject string   `json:"subject"`
			Body    string   `json:"body"`
		}
		if err := json.Unmarshal(plaintext, &inner); err != nil {
			http.Error(w, `{"error":"invalid sealed payload"}`, http.StatusBadRequest)
			return
		}
		msg = &mailer.Message{To: inner.To, Subject: inner.Subject, Body: inner.Body}
	}

	if err := s.mailer.Send(msg); err != nil {
		if errors.Is(err, mailer.ErrSendFailed) {
			log.Printf("send failed: %v", err)
			http.Error(w, `{"error":"message not sent"}`, http.StatusBadGateway)
			return
		}
		http.Error(w, `{"error":"invalid message"}`, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
