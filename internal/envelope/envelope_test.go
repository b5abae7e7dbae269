package envelope

import (
	"bytes"
	"errors"
	"testing"
)

func TestSeal_Open_RoundTrip(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	tests := []struct {
		name      string
		plaintext []byte
		aad       []byte
	}{
		{"simple", []byte(`{"to":["a@example.com"],"subject":"hi","body":"hello"}`), []byte("mail")},
		{"empty aad", []byte("body"), nil},
		{"binary", []byte{0x00, 0xff, 0x7f}, []byte("ctx")},
		{"large", make([]byte, 64*1024), []byte("mail")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Seal(keypair.PublicKey, tt.aad, tt.plaintext)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if env.V != Version || env.Algs != Algs {
				t.Errorf("envelope header = (%d, %q), want (%d, %q)", env.V, env.Algs, Version, Algs)
			}

			plaintext, err := Open(env, keypair)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(plaintext, tt.plaintext) {
				t.Error("plaintext does not round-trip")
			}
		})
	}
}

func TestOpen_WrongKeypair(t *testing.T) {
	alice, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	mallory, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	env, err := Seal(alice.PublicKey, []byte("mail"), []byte("secret body"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = Open(env, mallory)
	if !errors.Is(err, ErrOpenFailed) {
		t.Errorf("expected ErrOpenFailed, got %v", err)
	}
}

func TestOpen_Tampered(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	valid, err := Seal(keypair.PublicKey, []byte("mail"), []byte("secret body"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(e Envelope) Envelope
		want   error
	}{
		{"flipped ciphertext", func(e Envelope) Envelope {
			raw, _ := FromBase64URL(e.Ciphertext)
			raw[0] ^= 0x01
			e.Ciphertext = ToBase64URL(raw)
			return e
		}, ErrOpenFailed},
		{"flipped aad", func(e Envelope) Envelope {
			e.AAD = ToBase64URL([]byte("liam"))
			return e
		}, ErrOpenFailed},
		{"wrong version", func(e Envelope) Envelope {
			e.V = 2
			return e
		}, ErrInvalidEnvelope},
		{"wrong suite", func(e Envelope) Envelope {
			e.Algs = "RSA-OAEP:AES-128-CBC:PBKDF1"
			return e
		}, ErrInvalidEnvelope},
		{"truncated kem ciphertext", func(e Envelope) Envelope {
			raw, _ := FromBase64URL(e.CtKem)
			e.CtKem = ToBase64URL(raw[:len(raw)-1])
			return e
		}, ErrInvalidEnvelope},
		{"bad encoding", func(e Envelope) Envelope {
			e.Nonce = "not!base64"
			return e
		}, ErrInvalidEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.mutate(*valid)
			_, err := Open(&env, keypair)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestKeypairFromSecretKey(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := KeypairFromSecretKey(keypair.SecretKey)
	if err != nil {
		t.Fatalf("KeypairFromSecretKey() error = %v", err)
	}
	if !bytes.Equal(restored.PublicKey, keypair.PublicKey) {
		t.Error("restored public key differs from generated public key")
	}

	// Sealing to the restored public key must still open with the original.
	env, err := Seal(restored.PublicKey, nil, []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(env, keypair); err != nil {
		t.Errorf("Open() error = %v", err)
	}
}

func TestKeypairFromSecretKey_InvalidSize(t *testing.T) {
	_, err := KeypairFromSecretKey(make([]byte, 100))
	if !errors.Is(err, ErrInvalidSecretKeySize) {
		t.Errorf("expected ErrInvalidSecretKeySize, got %v", err)
	}
}

func TestSeal_InvalidPublicKeySize(t *testing.T) {
	_, err := Seal(make([]byte, 100), nil, []byte("x"))
	if !errors.Is(err, ErrInvalidPublicKeySize) {
		t.Errorf("expected ErrInvalidPublicKeySize, got %v", err)
	}
}
