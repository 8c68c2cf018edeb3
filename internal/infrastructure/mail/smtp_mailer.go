// Package mail envía documentos por SMTP.
package mail

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	appbilling "github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/pkg/config"
)

var _ appbilling.DocumentMailer = (*SMTPMailer)(nil)

// Dialer abstrae gomail.Dialer para poder sustituirlo en tests.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implementa billing.DocumentMailer con gomail (STARTTLS en el puerto 587).
type SMTPMailer struct {
	from   string
	dialer Dialer
}

// NewSMTPMailer devuelve nil si SMTP no está configurado; el caso de uso responde entonces ErrServiceUnavailable.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if !cfg.Enabled() {
		return nil
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{from: from, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)}
}

// NewSMTPMailerWithDialer construye el mailer con un dialer propio.
func NewSMTPMailerWithDialer(from string, d Dialer) *SMTPMailer {
	return &SMTPMailer{from: from, dialer: d}
}

// Send arma el mensaje multipart (texto + PDF) y lo entrega.
func (m *SMTPMailer) Send(ctx context.Context, msg appbilling.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := BuildMessage(m.from, msg)
	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("%w: smtp: %w", domain.ErrServiceUnavailable, err)
	}
	return nil
}

// BuildMessage construye el mensaje gomail con el adjunto en memoria.
func BuildMessage(from string, msg appbilling.MailMessage) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	if len(msg.Attachment) > 0 {
		data := msg.Attachment
		gm.Attach(msg.AttachmentName,
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}
	return gm
}
