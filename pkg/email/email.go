package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"ameencheck-backend/config"
)

// EmailService sends candidate invitation emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// InvitationData holds the data for verification invitation emails
type InvitationData struct {
	CandidateName string
	CompanyName   string
	Position      string
	RegisterURL   string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const invitationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Background Check Invitation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0a7d4f; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background: #0a7d4f; color: white; text-decoration: none; border-radius: 4px; }
        .footer { padding: 15px; font-size: 12px; color: #888; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Background Check Request</h1>
        </div>
        <div class="content">
            <p>Dear {{.CandidateName}},</p>
            <p>{{.CompanyName}} has requested a background check for the position of <strong>{{.Position}}</strong>.</p>
            <p>Please register and submit your supporting information to begin the verification process.</p>
            <p><a class="button" href="{{.RegisterURL}}">Start Verification</a></p>
        </div>
        <div class="footer">
            <p>This email was sent by the AmeenCheck verification platform.</p>
        </div>
    </div>
</body>
</html>`

// SendInvitation sends a verification invitation to the candidate.
func (s *EmailService) SendInvitation(toEmail string, data InvitationData) error {
	tmpl, err := template.New("invitation").Parse(invitationTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := fmt.Sprintf("Background Check Request from %s", data.CompanyName)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		toEmail,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
