package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"fleet-registry/internal/config"
)

type Service interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	// SendExpiryDigest mails the list of expiry alerts created for one
	// user by a sweep run.
	SendExpiryDigest(ctx context.Context, toEmail, fullName string, messages []string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var resetTemplate = template.Must(template.New("reset").Parse(`
<h2>Password Reset</h2>
<p>Hello {{.Name}},</p>
<p>A password reset was requested for your fleet registry account.
Follow the link below to choose a new password. The link expires in one hour.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>`))

var digestTemplate = template.Must(template.New("digest").Parse(`
<h2>Document Expiry Alerts</h2>
<p>Hello {{.Name}},</p>
<p>The following vehicle documents are approaching expiry:</p>
<ul>
{{range .Messages}}<li>{{.}}</li>
{{end}}</ul>
<p>Open the fleet registry to review and act on these alerts.</p>`))

func (s *service) send(toEmail, subject string, tmpl *template.Template, data interface{}) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Fleet Registry <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	data := struct {
		Name string
		Link string
	}{
		Name: fullName,
		Link: fmt.Sprintf("http://%s/reset-password?token=%s", s.config.Domain, resetToken),
	}
	return s.send(toEmail, "Reset your fleet registry password", resetTemplate, data)
}

func (s *service) SendExpiryDigest(ctx context.Context, toEmail, fullName string, messages []string) error {
	data := struct {
		Name     string
		Messages []string
	}{
		Name:     fullName,
		Messages: messages,
	}
	return s.send(toEmail, "Vehicle document expiry alerts", digestTemplate, data)
}
