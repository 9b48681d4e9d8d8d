package notificator

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotificator delivers mail over SMTP. It doubles as the admin
// notification channel when AdminEmail is set.
type EmailNotificator struct {
	logger *logger.Logger

	SMTPHost   string
	SMTPPort   int
	SMTPSender string
	SenderName string
	AdminEmail string

	SMTPAuth smtp.Auth

	send sendMailFunc
}

var _ models.Mailer = (*EmailNotificator)(nil)

func NewEmailNotificator(logger *logger.Logger, SMTPHost string, SMTPPort int, SMTPUser, SMTPPassword, SMTPSender, senderName, adminEmail string) *EmailNotificator {
	var auth smtp.Auth
	if SMTPUser != "" {
		auth = smtp.PlainAuth("", SMTPUser, SMTPPassword, SMTPHost)
	}

	return &EmailNotificator{
		logger:     logger,
		SMTPAuth:   auth,
		SMTPHost:   SMTPHost,
		SMTPPort:   SMTPPort,
		SMTPSender: SMTPSender,
		SenderName: senderName,
		AdminEmail: adminEmail,
		send:       smtp.SendMail,
	}
}

// SendMail sends one message. With a non-empty html body the message is
// multipart/alternative, otherwise plain text.
func (e *EmailNotificator) SendMail(ctx context.Context, to, subject, text, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := e.compose(to, subject, text, html)
	if err != nil {
		return fmt.Errorf("failed to compose email: %w", err)
	}
	addr := e.SMTPHost + ":" + strconv.Itoa(e.SMTPPort)
	if err := e.send(addr, e.SMTPAuth, e.SMTPSender, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	e.logger.Debug("Email sent", "to", to, "subject", subject)
	return nil
}

// Notify mails the admin notification address.
func (e *EmailNotificator) Notify(ctx context.Context, subject, text string) error {
	return e.SendMail(ctx, e.AdminEmail, subject, text, "")
}

func (e *EmailNotificator) compose(to, subject, text, html string) ([]byte, error) {
	from := (&mail.Address{Name: e.SenderName, Address: e.SMTPSender}).String()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if html == "" {
		buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		buf.WriteString(text)
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())
	for _, part := range []struct{ contentType, body string }{
		{"text/plain; charset=utf-8", text},
		{"text/html; charset=utf-8", html},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
