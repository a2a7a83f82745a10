package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"reliableteam-site/config"
	"reliableteam-site/internal/domain"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	send      sendFunc
}

// inquiryEmailData holds the data for new-inquiry emails
type inquiryEmailData struct {
	ID           string
	Name         string
	Email        string
	Company      string
	Requirements string
	Source       string
	ReceivedAt   string
}

// NewEmailService creates a new email service with Brevo SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.InquiryEmailTo,
		send:      smtp.SendMail,
	}
}

var inquiryEmailTemplate = template.Must(template.New("inquiry").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Inquiry</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #059669; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .label { font-weight: bold; color: #555; }
        .needs { background: white; padding: 15px; border-left: 4px solid #059669; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New inquiry from {{.Company}}</h1>
        </div>
        <div class="content">
            <p><span class="label">From:</span> {{.Name}} ({{.Email}})</p>
            <p><span class="label">Company:</span> {{.Company}}</p>
            <p><span class="label">Received:</span> {{.ReceivedAt}} via {{.Source}}</p>
            <div class="label">AI role needs:</div>
            <div class="needs">{{.Requirements}}</div>
        </div>
        <div class="footer">
            <p>Promise on the site: 2 vetted profiles by Friday. Inquiry {{.ID}}.</p>
            <p>To reply, send an email to: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`))

// NotifyNewInquiry mails the talent inbox about a freshly stored inquiry.
func (s *EmailService) NotifyNewInquiry(ctx context.Context, inquiry *domain.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := inquiryEmailData{
		ID:           inquiry.ID.String(),
		Name:         inquiry.Name,
		Email:        inquiry.Email,
		Company:      inquiry.Company,
		Requirements: inquiry.Requirements,
		Source:       inquiry.Source,
		ReceivedAt:   inquiry.CreatedAt.UTC().Format(time.RFC1123),
	}

	var body bytes.Buffer
	if err := inquiryEmailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := fmt.Sprintf("New inquiry: %s (%s)", inquiry.Company, inquiry.Name)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		inquiry.Email,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
