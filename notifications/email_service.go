package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/logger"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	URL         string
	HTTPClient  *http.Client
}

var EmailClient *BrevoService

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Default("EMAIL_SENDER_NAME", "SkillSwap")

	if apiKey == "" || senderEmail == "" {
		logger.L().Warn("email service not configured, BREVO_API_KEY or EMAIL_SENDER missing")
		EmailClient = nil
		return
	}

	EmailClient = NewBrevoService(apiKey, senderEmail, senderName)
	logger.L().Info("email service initialized", "sender", senderEmail)
}

func NewBrevoService(apiKey, senderEmail, senderName string) *BrevoService {
	return &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		URL:         brevoURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *BrevoService) Send(ctx context.Context, toEmail, toName, subject, htmlContent string) error {
	at := strings.Index(toEmail, "@")
	if at <= 0 {
		return fmt.Errorf("invalid recipient email: %q", toEmail)
	}
	if toName == "" {
		toName = toEmail[:at]
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// SendEmail is fire-and-forget: failures are logged, never returned.
func SendEmail(toName, toEmail, subject, htmlContent string) {
	if EmailClient == nil {
		logger.L().Debug("email client not initialized, skipping send", "subject", subject)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := EmailClient.Send(ctx, toEmail, toName, subject, htmlContent); err != nil {
		logger.L().Error("failed to send email", "to", toEmail, "subject", subject, "error", err)
		return
	}
	logger.L().Debug("email sent", "to", toEmail, "subject", subject)
}
