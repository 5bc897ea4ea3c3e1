package mailer

// Service delivers transactional email for the API.
type Service interface {
	SendPasswordResetEmail(toEmail, toName, resetURL, token string) error
}
