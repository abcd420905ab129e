// Package mail delivers verification codes to users out of band.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const subject = "Your taskboard verification code"

// Sender delivers a verification code to an email address.
type Sender interface {
	Send(ctx context.Context, to, code string) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends codes through an SMTP relay using STARTTLS when the server offers it.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	sendMail sendMailFunc
}

// NewSMTPSender returns a sender for the given relay. Port defaults to 587.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		sendMail: smtp.SendMail,
	}
}

// Send delivers the code to the given address. Does not log the code.
func (s *SMTPSender) Send(ctx context.Context, to, code string) error {
	if s.Host == "" || s.From == "" {
		return errors.New("mail: SMTP host or sender not configured")
	}
	if strings.ContainsAny(to, "\r\n") {
		return errors.New("mail: invalid recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	if err := s.sendMail(addr, auth, s.From, []string{to}, s.message(to, code)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}

func (s *SMTPSender) message(to, code string) []byte {
	var b strings.Builder
	b.WriteString("From: " + s.From + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("Your verification code is " + code + ".\r\n")
	b.WriteString("It expires in 10 minutes. If you did not request it, ignore this email.\r\n")
	return []byte(b.String())
}

// LogSender prints codes to the process log. Development only.
type LogSender struct{}

// Send logs the code for the given address.
func (LogSender) Send(ctx context.Context, to, code string) error {
	log.Printf("mail: verification code for %s: %s", to, code)
	return nil
}
