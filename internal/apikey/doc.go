// Package apikey implements the encrypted API token scheme used to
// authenticate requests to the mail service.
//
// # Scheme
//
// Both sides hold two out-of-band provisioned values: a long-lived shared
// secret and a fixed expected plaintext. To issue a token, the client
// generates a fresh random salt and nonce, stretches the shared secret and
// salt into a one-time AES-256 key with PBKDF2, encrypts the expected
// plaintext under that key with AES-256-GCM, and packs
// ciphertext || nonce || salt into a single base64url string. The verifier
// reverses the process: it re-derives the key from the salt embedded in the
// token, decrypts, and compares the result to its own expected plaintext in
// constant time.
//
// Because the key is derived from a fresh salt on every issuance, two tokens
// minted from the same secret never share a key, and nonce collisions across
// tokens are cryptographically inconsequential. Within a single issuance the
// nonce still comes from crypto/rand.
//
// # Security Notes
//
// Verification failures are deliberately coarse. [Scheme.Verify] reports
// whether the token was malformed, failed authentication, or decrypted to
// the wrong plaintext, but those reasons are for internal diagnostics only.
// Anything that answers external callers must collapse all three into one
// uniform rejection, or the endpoint becomes a padding/format oracle.
//
// Keys, nonces, plaintexts, and the shared secret are never logged by this
// package.
package apikey
