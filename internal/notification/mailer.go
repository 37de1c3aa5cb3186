package notification

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
}

// SMTPMailer delivers transactional mail over SMTP.
type SMTPMailer struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPMailer{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPMailer) SendPasswordResetEmail(to, resetURL string) error {
	subject := "Reset Your Password"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Password Reset Request</h2>
			<p>We received a request to reset your password. Click the link below to reset it:</p>
			<p><a href="%s">Reset Password</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link will expire in 15 minutes.</p>
			<p>If you didn't request a password reset, please ignore this email and your password will remain unchanged.</p>
		</body>
		</html>
	`, resetURL, resetURL)

	plainBody := fmt.Sprintf(`
Password Reset Request

We received a request to reset your password. Visit the following URL to reset it:
%s

This link will expire in 15 minutes.

If you didn't request a password reset, please ignore this email and your password will remain unchanged.
	`, resetURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPMailer) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// LogMailer is the development fallback when no SMTP host is configured.
// It logs the recipient but never the reset link itself.
type LogMailer struct{}

func (LogMailer) SendPasswordResetEmail(to, resetURL string) error {
	log.Printf("password reset requested: to=%s (link withheld from logs)", to)
	return nil
}
