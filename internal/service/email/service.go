package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"plataforma-pm/internal/config"
)

type Service interface {
	SendNotificationEmail(ctx context.Context, toEmail, recipientName, title, message string, link *string) error
}

type service struct {
	client *resend.Client
	config *config.Config
	tmpl   *template.Template
}

var notificationTemplate = template.Must(template.New("notification").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>{{.Title}}</h2>
	<p>Hola {{.Name}},</p>
	<p>{{.Message}}</p>
	{{if .Link}}<p><a href="{{.Link}}">Ver detalle</a></p>{{end}}
	<p style="color: #888; font-size: 12px;">Plataforma PM</p>
</div>`))

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &service{
		client: client,
		config: cfg,
		tmpl:   notificationTemplate,
	}
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName, title, message string, link *string) error {
	data := struct {
		Title   string
		Name    string
		Message string
		Link    string
	}{
		Title:   title,
		Name:    recipientName,
		Message: message,
	}
	if link != nil {
		data.Link = *link
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Plataforma PM <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: title,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
