// Package envelope implements sealed mail submission: end-to-end
// encryption of a message body from a client to the service.
//
// The client encapsulates to the service's ML-KEM-768 public key, derives
// an AES-256-GCM key from the shared secret with HKDF-SHA-512 and domain
// separation, and encrypts the message. The service decapsulates with its
// secret key and decrypts before relaying the mail over SMTP.
//
// Sealing is optional and independent of request authentication; every
// request, sealed or not, still carries an API token.
package envelope
