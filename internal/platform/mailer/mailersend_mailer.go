package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

// MailerSendMailer sends transactional mail through MailerSend.
type MailerSendMailer struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendMailer(apiKey, fromName, fromEmail string) *MailerSendMailer {
	return &MailerSendMailer{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (m *MailerSendMailer) SendPasswordResetEmail(toEmail, toName, resetURL, token string) error {
	subject := "Reset your Planeja Casar password"
	text := fmt.Sprintf("We received a request to reset your password.\n\nOpen this link to choose a new one: %s\n\nIf you did not ask for this, you can ignore this email.", resetURL)
	html := fmt.Sprintf(`<p>We received a request to reset your password.</p><p><a href="%s">Choose a new password</a></p><p>If you did not ask for this, you can ignore this email.</p>`, resetURL)
	_, err := m.send(toEmail, toName, subject, text, html)
	return err
}

func (m *MailerSendMailer) send(toEmail, toName, subject, text, html string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	// MailerSend uses X-Message-Id
	return res.Header.Get("X-Message-Id"), nil
}
