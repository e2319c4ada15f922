package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"reviewhub/internal/config"
)

// SMTPMailer delivers confirmation codes over plain SMTP. When the SMTP
// settings are missing it stays disabled and sends become no-ops, so local
// development works without a mail server.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	enabled  bool
	logger   *slog.Logger
}

func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) *SMTPMailer {
	enabled := cfg.SMTPHost != "" && cfg.SMTPFrom != ""
	if !enabled {
		logger.Warn("mailer disabled: missing SMTP configuration")
	}

	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.SMTPFrom,
		enabled:  enabled,
		logger:   logger,
	}
}

// SendConfirmationCode mails the signup confirmation code. Delivery is
// fire-and-forget; failures are logged and never fail the request.
func (m *SMTPMailer) SendConfirmationCode(email, code string) {
	if !m.enabled {
		return
	}

	go func() {
		addr := fmt.Sprintf("%s:%s", m.host, m.port)
		var auth smtp.Auth
		if m.username != "" {
			auth = smtp.PlainAuth("", m.username, m.password, m.host)
		}

		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: reviewhub <%s>\r\n"+
			"Subject: Confirmation code\r\n"+
			"\r\n"+
			"Your confirmation code is %s\r\n", email, m.from, code))

		if err := smtp.SendMail(addr, auth, m.from, []string{email}, msg); err != nil {
			m.logger.Error("failed to send confirmation email", "email", email, "error", err)
			return
		}
		m.logger.Info("confirmation email sent", "email", email)
	}()
}
