package mailer

import (
	"fmt"

	"github.com/planejacasar/wedding-backend/pkg/logger"
)

// DevMailer prints mail to stdout instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendPasswordResetEmail(toEmail, toName, resetURL, token string) error {
	logger.Info("[DEV MAIL] password reset email",
		"to", toEmail,
		"name", toName,
		"reset_url", resetURL,
		"token", token,
	)

	fmt.Printf("\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"PASSWORD RESET EMAIL (DEV MODE)\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"To: %s (%s)\n"+
		"Subject: Reset your Planeja Casar password\n"+
		"\n"+
		"Reset URL: %s\n"+
		"Token: %s\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n",
		toEmail, toName, resetURL, token)

	return nil
}
