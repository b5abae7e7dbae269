// Package mailer composes and relays outgoing email over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
)

var (
	// ErrNoRecipients is returned when a message has no recipients.
	ErrNoRecipients = errors.New("message has no recipients")

	// ErrInvalidAddress is returned when a recipient or sender address
	// does not parse.
	ErrInvalidAddress = errors.New("invalid email address")

	// ErrHeaderInjection is returned when a header value contains CR or LF.
	ErrHeaderInjection = errors.New("header value contains line break")

	// ErrSendFailed is returned when the SMTP relay rejects the message.
	ErrSendFailed = errors.New("send failed")
)

// sendMail is swapped out in tests.
var sendMail = smtp.SendMail

// Message is one outgoing email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer relays messages through one SMTP server. The zero value is not
// usable; construct with New.
type Mailer struct {
	addr     string
	from     string
	username string
	password string
}

// New returns a Mailer for the relay at addr (host:port), sending as from.
// If username is non-empty, PLAIN auth is used.
func New(addr, from, username, password string) (*Mailer, error) {
	if _, err := mail.ParseAddress(from); err != nil {
		return nil, fmt.Errorf("%w: sender %q", ErrInvalidAddress, from)
	}
	return &Mailer{addr: addr, from: from, username: username, password: password}, nil
}

// Send validates, composes, and relays one message.
func (m *Mailer) Send(msg *Message) error {
	data, err := m.compose(msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.username != "" {
		host := m.addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}

	if err := sendMail(m.addr, auth, m.from, msg.To, data); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// compose validates the message and renders it as an RFC 5322 byte stream.
func (m *Mailer) compose(msg *Message) ([]byte, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	for _, to := range msg.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return nil, fmt.Errorf("%w: recipient %q", ErrInvalidAddress, to)
		}
		if strings.ContainsAny(to, "\r\n") {
			return nil, ErrHeaderInjection
		}
	}
	if strings.ContainsAny(msg.Subject, "\r\n") {
		return nil, ErrHeaderInjection
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String()), nil
}
