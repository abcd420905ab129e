package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newCapturingSender(t *testing.T, username string, sendErr error) (*SMTPSender, *capturedMail) {
	t.Helper()
	got := &capturedMail{}
	s := NewSMTPSender("smtp.example.com", 0, username, "secret", "no-reply@example.com")
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		got.addr, got.auth, got.from, got.to, got.msg = addr, a, from, to, string(msg)
		return sendErr
	}
	return s, got
}

func TestNewSMTPSender_DefaultPort(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 0, "", "", "a@example.com")
	if s.Port != 587 {
		t.Errorf("Port = %d, want 587", s.Port)
	}
}

func TestSMTPSender_Send(t *testing.T) {
	s, got := newCapturingSender(t, "mailer", nil)

	if err := s.Send(context.Background(), "user@example.com", "123456"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.addr != "smtp.example.com:587" {
		t.Errorf("addr = %q", got.addr)
	}
	if got.auth == nil {
		t.Error("auth should be set when username is configured")
	}
	if got.from != "no-reply@example.com" {
		t.Errorf("from = %q", got.from)
	}
	if len(got.to) != 1 || got.to[0] != "user@example.com" {
		t.Errorf("to = %v", got.to)
	}
	if !strings.Contains(got.msg, "To: user@example.com\r\n") {
		t.Error("message should carry the To header")
	}
	if !strings.Contains(got.msg, "Subject: "+subject) {
		t.Error("message should carry the subject")
	}
	if !strings.Contains(got.msg, "123456") {
		t.Error("message should carry the code")
	}
}

func TestSMTPSender_NoAuthWithoutUsername(t *testing.T) {
	s, got := newCapturingSender(t, "", nil)
	if err := s.Send(context.Background(), "user@example.com", "123456"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.auth != nil {
		t.Error("auth should be nil without username")
	}
}

func TestSMTPSender_Errors(t *testing.T) {
	t.Run("relay failure is wrapped", func(t *testing.T) {
		relayErr := errors.New("connection refused")
		s, _ := newCapturingSender(t, "", relayErr)
		err := s.Send(context.Background(), "user@example.com", "123456")
		if !errors.Is(err, relayErr) {
			t.Errorf("err = %v, want wrapped relay error", err)
		}
	})
	t.Run("header injection", func(t *testing.T) {
		s, _ := newCapturingSender(t, "", nil)
		if err := s.Send(context.Background(), "a@example.com\r\nBcc: x@example.com", "1"); err == nil {
			t.Error("recipient with CRLF should be rejected")
		}
	})
	t.Run("not configured", func(t *testing.T) {
		s := &SMTPSender{}
		if err := s.Send(context.Background(), "a@example.com", "1"); err == nil {
			t.Error("unconfigured sender should fail")
		}
	})
	t.Run("cancelled context", func(t *testing.T) {
		s, _ := newCapturingSender(t, "", nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := s.Send(ctx, "a@example.com", "1"); !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestLogSender_Send(t *testing.T) {
	if err := (LogSender{}).Send(context.Background(), "a@example.com", "123456"); err != nil {
		t.Errorf("LogSender.Send: %v", err)
	}
}
