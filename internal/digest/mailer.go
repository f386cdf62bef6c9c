package digest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmelton/jobdigest/internal/model"
)

// MailgunMailer sends the digest through the Mailgun HTTP API. Delivery is
// fire-and-forget: a failure is reported with the provider's status and
// body, never retried.
type MailgunMailer struct {
	baseURL    string
	domain     string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewMailgunMailer creates a mailer for the given sending domain.
func NewMailgunMailer(baseURL, domain, apiKey, from, to string, httpClient *http.Client, logger *slog.Logger) *MailgunMailer {
	return &MailgunMailer{
		baseURL:    baseURL,
		domain:     domain,
		apiKey:     apiKey,
		from:       from,
		to:         to,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send submits one email. The response status and body are logged either
// way; non-2xx becomes an error carrying both.
func (m *MailgunMailer) Send(ctx context.Context, subject, body string) error {
	endpoint := fmt.Sprintf("%s/v3/%s/messages", m.baseURL, m.domain)

	form := url.Values{}
	form.Set("from", m.from)
	form.Set("to", m.to)
	form.Set("subject", subject)
	form.Set("text", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create mailgun request: %w", err)
	}
	req.SetBasicAuth("api", m.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	m.logger.Info("email sent",
		"status", resp.StatusCode,
		"response", strings.TrimSpace(string(respBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
			Err:        fmt.Errorf("mailgun delivery failed"),
		}
	}
	return nil
}
