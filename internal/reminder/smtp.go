package reminder

import (
	"fmt"
	"net"
	"net/smtp"
)

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
}

// Send delivers one message. Authentication is used only when a username is
// configured.
func (s *SMTPSender) Send(to, subject, body string) error {
	host, _, err := net.SplitHostPort(s.Addr)
	if err != nil {
		return fmt.Errorf("invalid SMTP address %q: %w", s.Addr, err)
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.From, to, subject, body)
	if err := smtp.SendMail(s.Addr, auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
