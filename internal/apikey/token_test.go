package apikey

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestPack_Unpack_RoundTrip(t *testing.T) {
	ciphertext := bytes.Repeat([]byte{0xAA}, 32)
	nonce := bytes.Repeat([]byte{0xBB}, 12)
	salt := bytes.Repeat([]byte{0xCC}, 16)

	token := Pack(ciphertext, nonce, salt)

	ct, n, s, err := Unpack(token, len(ciphertext), len(nonce), len(salt))
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if !bytes.Equal(ct, ciphertext) {
		t.Error("ciphertext segment does not round-trip")
	}
	if !bytes.Equal(n, nonce) {
		t.Error("nonce segment does not round-trip")
	}
	if !bytes.Equal(s, salt) {
		t.Error("salt segment does not round-trip")
	}
}

func TestPack_SegmentOrder(t *testing.T) {
	token := Pack([]byte{1, 2}, []byte{3}, []byte{4, 5, 6})

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("raw layout = %v, want ciphertext||nonce||salt", raw)
	}
}

func TestUnpack_RejectsWrongTotalLength(t *testing.T) {
	raw := make([]byte, 60)

	tests := []struct {
		name string
		blob []byte
	}{
		{"truncated by one byte", raw[:59]},
		{"padded with one byte", append(append([]byte(nil), raw...), 0x00)},
		{"empty", nil},
		{"only one segment", raw[:16]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := base64.RawURLEncoding.EncodeToString(tt.blob)
			_, _, _, err := Unpack(token, 32, 12, 16)
			if !errors.Is(err, ErrMalformedToken) {
				t.Errorf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestUnpack_RejectsBadEncoding(t *testing.T) {
	_, _, _, err := Unpack("not!valid!base64url!", 32, 12, 16)
	if !errors.Is(err, ErrMalformedToken) {
		t.Errorf("expected ErrMalformedToken, got %v", err)
	}
}
