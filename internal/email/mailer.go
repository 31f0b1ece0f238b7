// Package email sends transactional mail over SMTP. When no SMTP host is
// configured the mailer logs the message instead of failing, which keeps
// local development working without a mail relay.
package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/sreaderapp/sreader-server/internal/config"
)

type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

// SendResetCode delivers a password reset code to the given address.
func (m *Mailer) SendResetCode(to, code string) error {
	subject := "Your sReader password reset code"
	body := fmt.Sprintf(
		"Your password reset code is %s.\r\n\r\nIt expires in 15 minutes. If you did not request a reset, ignore this message.\r\n",
		code,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.host == "" {
		slog.Info("smtp not configured, mail not sent", "to", to, "subject", subject)
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
