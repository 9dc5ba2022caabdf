// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"net/smtp"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/stockadoodle/backend/internal/config"
)

type NotificationService struct {
	config *config.Config
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

var mfaEmailTemplate = template.Must(template.New("mfa").Parse(`Dear {{.Username}},

Your Multi-Factor Authentication (MFA) code for logging into StockaDoodle is:

{{.Code}}

This code is valid for {{.ExpiryMinutes}} minutes. Please enter it to complete your login.

If you did not request this code, please ignore this email.

Sincerely,
StockaDoodle Team
`))

// SendMFACodeEmail delivers a one-time login code to the user's email.
func (s *NotificationService) SendMFACodeEmail(email, username, code string, expiryMinutes int) error {
	data := map[string]interface{}{
		"Username":      username,
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	}

	body, err := s.renderTemplate(mfaEmailTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(email, "Your StockaDoodle Login Code", body)
}

func (s *NotificationService) renderTemplate(tmpl *template.Template, data map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	email := s.config.Email
	if email.SMTPUsername == "" || email.SMTPPassword == "" {
		return fmt.Errorf("SMTP not configured")
	}

	from := email.FromEmail
	if from == "" {
		from = email.SMTPUsername
	}

	message := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		email.FromName, from, to, subject, body)

	addr := email.SMTPHost + ":" + email.SMTPPort
	auth := smtp.PlainAuth("", email.SMTPUsername, email.SMTPPassword, email.SMTPHost)

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logrus.WithField("to", to).Info("Email sent")
	return nil
}
