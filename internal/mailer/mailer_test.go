package mailer

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestCompose(t *testing.T) {
	m, err := New("smtp.example.com:25", "noreply@example.com", "", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data, err := m.compose(&Message{
		To:      []string{"alice@example.com", "bob@example.com"},
		Subject: "Will you mail me?",
		Body:    "Yes.",
	})
	if err != nil {
		t.Fatalf("compose() error = %v", err)
	}

	text := string(data)
	for _, want := range []string{
		"From: noreply@example.com\r\n",
		"To: alice@example.com, bob@example.com\r\n",
		"Subject: Will you mail me?\r\n",
		"\r\n\r\nYes.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("composed message missing %q", want)
		}
	}
}

func TestCompose_Invalid(t *testing.T) {
	m, err := New("smtp.example.com:25", "noreply@example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"no recipients", Message{Subject: "s"}, ErrNoRecipients},
		{"bad recipient", Message{To: []string{"not-an-address"}}, ErrInvalidAddress},
		{"subject injection", Message{To: []string{"a@example.com"}, Subject: "x\r\nBcc: evil@example.com"}, ErrHeaderInjection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.compose(&tt.msg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNew_InvalidSender(t *testing.T) {
	_, err := New("smtp.example.com:25", "not an address", "", "")
	if !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestSend_UsesRelay(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotAuth smtp.Auth

	original := sendMail
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo = addr, a, from, to
		return nil
	}
	defer func() { sendMail = original }()

	m, err := New("smtp.example.com:587", "noreply@example.com", "user", "pass")
	if err != nil {
		t.Fatal(err)
	}

	err = m.Send(&Message{To: []string{"alice@example.com"}, Subject: "s", Body: "b"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "noreply@example.com" {
		t.Errorf("from = %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "alice@example.com" {
		t.Errorf("to = %v", gotTo)
	}
	if gotAuth == nil {
		t.Error("expected PLAIN auth when username is set")
	}
}

func TestSend_RelayFailure(t *testing.T) {
	original := sendMail
	sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	defer func() { sendMail = original }()

	m, err := New("smtp.example.com:25", "noreply@example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}

	err = m.Send(&Message{To: []string{"alice@example.com"}})
	if !errors.Is(err, ErrSendFailed) {
		t.Errorf("expected ErrSendFailed, got %v", err)
	}
}
