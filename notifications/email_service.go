package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	config "github.com/anjiri1684/review_board/configs"
	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/models"
	"go.uber.org/zap"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string

	endpoint string
	client   *http.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewBrevoService returns nil when e-mail is not configured.
func NewBrevoService(cfg *config.Config) *BrevoService {
	if !cfg.EmailEnabled() {
		return nil
	}
	return &BrevoService{
		APIKey:      cfg.BrevoAPIKey,
		SenderEmail: cfg.EmailSender,
		SenderName:  cfg.EmailSenderName,
		endpoint:    brevoEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *BrevoService) Send(ctx context.Context, toEmail, toName, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// ReviewAlert mails a fixed address whenever a review is stored.
type ReviewAlert struct {
	mailer    *BrevoService
	recipient string
	log       *logger.Logger
	dispatch  func(func())
}

func NewReviewAlert(mailer *BrevoService, recipient string, log *logger.Logger) *ReviewAlert {
	return &ReviewAlert{
		mailer:    mailer,
		recipient: recipient,
		log:       log,
		dispatch:  func(f func()) { go f() },
	}
}

func (a *ReviewAlert) ReviewCreated(review models.Review) {
	if a.mailer == nil || a.recipient == "" {
		return
	}

	subject := fmt.Sprintf("New review from %s", review.CustomerName)
	body := fmt.Sprintf(
		"<h1>New review</h1><p><b>%s</b> (%s) rated %d/5 on %s.</p>",
		html.EscapeString(review.CustomerName),
		html.EscapeString(review.Country),
		review.Rating,
		review.ReviewDate.Format("January 2, 2006"),
	)

	a.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.mailer.Send(ctx, a.recipient, "", subject, body); err != nil {
			a.log.Error("failed to send review alert", zap.String("to", a.recipient), zap.Error(err))
			return
		}
		a.log.Info("review alert sent", zap.String("to", a.recipient), zap.Stringer("review_id", review.ID))
	})
}
