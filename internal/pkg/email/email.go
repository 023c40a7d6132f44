package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/timeconnect/attendance-backend-go/internal/config"
	"github.com/timeconnect/attendance-backend-go/internal/domain/notification"
)

//go:embed templates/*.html
var templateFS embed.FS

type emailSenderImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailSender creates an SMTP-backed notification.Sender.
func NewEmailSender(cfg config.SMTPConfig) (notification.Sender, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailSenderImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

// SendAttendanceNotification sends the clock-in/clock-out summary email.
func (s *emailSenderImpl) SendAttendanceNotification(data notification.AttendanceEmail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "attendance_notification.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Attendance Report for %s", data.Date)
	return s.sendHTML(data.EmployeeEmail, subject, body.String())
}

// SendPasswordReset sends a password reset email with the raw token.
func (s *emailSenderImpl) SendPasswordReset(data notification.PasswordResetEmail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "password_reset.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(data.EmployeeEmail, "Reset Your Password", body.String())
}

func (s *emailSenderImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	slog.Info("Email sent successfully", "to", to, "subject", subject)
	return nil
}
