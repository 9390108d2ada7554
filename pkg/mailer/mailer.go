// Package mailer sends campaign email over SMTP.
package mailer

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Attachment is an in-memory file attached to an outbound email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Config holds SMTP settings.
type Config struct {
	FromAddress string
	FromName    string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
}

// Mailer delivers HTML email via SMTP. Delivery is synchronous; callers that
// must not fail on email errors run it through the job queue instead.
type Mailer struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Mailer.
func New(cfg Config, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// Send delivers one HTML email, optionally with attachments.
func (m *Mailer) Send(to, subject, htmlBody string, attachments ...Attachment) error {
	if to == "" || subject == "" || htmlBody == "" {
		return fmt.Errorf("missing email parameters (to, subject, or body)")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	for _, a := range attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		msg.Attach(a.Filename, settings...)
	}

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := dialer.DialAndSend(msg); err != nil {
		m.logger.Error("email send failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
