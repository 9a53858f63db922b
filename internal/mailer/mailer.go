package mailer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/config"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/pkg/logger"
)

// ErrNotConfigured is returned when SMTP credentials are missing. The server
// runs without them; only the mail subsystem is degraded.
var ErrNotConfigured = errors.New("mail transport not configured")

// Mailer sends mail through the configured SMTP account
type Mailer struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	logger *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		logger: log,
	}
}

// Send delivers a single message and returns its message id. There is no
// retry and no timeout beyond what the SMTP dial itself enforces.
func (m *Mailer) Send(to, subject, htmlBody, plainBody string) (string, error) {
	if !m.cfg.MailConfigured() {
		return "", ErrNotConfigured
	}

	from := m.cfg.MailFromAddress
	if from == "" {
		from = m.cfg.SMTPUsername
	}

	messageID := fmt.Sprintf("<%s@jansunwayi-ayodhya>", uuid.New().String())

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", from, m.cfg.MailFromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", messageID)
	if plainBody != "" {
		msg.SetBody("text/plain", plainBody)
		if htmlBody != "" {
			msg.AddAlternative("text/html", htmlBody)
		}
	} else {
		msg.SetBody("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return messageID, nil
}
