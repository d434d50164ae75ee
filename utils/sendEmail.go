package utils

import (
	"fmt"
	"strconv"

	"linkabet-backend/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a package-level variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables
func InitializeMailer() {
	mailHost := config.GetEnv("SMTP_HOST")
	mailPort := config.GetEnv("SMTP_PORT")
	mailUser := config.GetEnv("SMTP_USER")
	mailPassword := config.GetEnv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Warn("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// SendEmail sends a plain-text message with an optional file attachment.
func SendEmail(recipient, message, subject, attachmentPath string) error {
	if mailer == nil {
		return fmt.Errorf("mailer is not initialized")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.GetEnvDefault("SMTP_FROM", "noreply@lab.et"))
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", message)
	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	if err := mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}
