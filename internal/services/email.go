package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

const defaultSubject = "You've received a transfer"

// defaultEmailTemplate is used when the caller supplies no HTML body
var defaultEmailTemplate = template.Must(template.New("email").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>{{.Subject}}</h2>
  <p>You have a pending transfer waiting for you. Open the app to claim it.</p>
  <p style="color: #888; font-size: 12px;">Sent by {{.SenderName}}</p>
</div>`))

// EmailService relays transactional email through the provider
type EmailService struct {
	client *resend.Client
	cfg    config.EmailConfig
}

// NewEmailService creates a new EmailService instance
func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{
		client: resend.NewClient(cfg.APIKey),
		cfg:    cfg,
	}
}

// Send relays one email. The HTML body comes from the request or the
// built-in template; the provider's message ID is echoed back.
func (s *EmailService) Send(req *models.SendEmailRequest) (*models.SendEmailResponse, error) {
	from := req.From
	if from == "" {
		from = s.cfg.FromAddress
	}

	senderName := req.SenderName
	if senderName == "" {
		senderName = s.cfg.SenderName
	}

	subject := req.Subject
	if subject == "" {
		subject = defaultSubject
	}

	html := req.HTML
	if html == "" {
		var buf bytes.Buffer
		if err := defaultEmailTemplate.Execute(&buf, map[string]string{
			"Subject":    subject,
			"SenderName": senderName,
		}); err != nil {
			return nil, models.NewUpstreamError(models.ErrorCodeEmailFailure, "Failed to send email", err)
		}
		html = buf.String()
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", senderName, from),
		To:      []string{req.To},
		Subject: subject,
		Html:    html,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeEmailFailure, "Failed to send email", err)
	}

	// The provider can report a failure in-band even on an HTTP success
	if sent == nil || sent.Id == "" {
		return nil, models.NewUpstreamError(models.ErrorCodeEmailFailure, "Failed to send email",
			fmt.Errorf("provider returned no message id"))
	}

	logger.GetLogger().Info("Email relayed",
		zap.String("message_id", sent.Id),
	)

	return &models.SendEmailResponse{
		Success: true,
		ID:      sent.Id,
	}, nil
}
