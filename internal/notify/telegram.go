// Package notify pushes attempt outcomes to Telegram so failures reach a
// phone instead of a log file nobody tails.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/apply-agent/internal/types"
)

// DefaultTimeout bounds the notification request so a slow Telegram API
// never stalls an application cycle.
const DefaultTimeout = 10 * time.Second

const apiBase = "https://api.telegram.org"

// Notifier sends messages to one chat. The zero-value check in Enabled
// makes an unconfigured notifier a silent no-op, matching how optional
// the channel is.
type Notifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

// NewNotifier builds a notifier from bot credentials. Either value being
// empty disables sending.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  apiBase,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
}

// Enabled reports whether credentials are configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.botToken != "" && n.chatID != ""
}

// Send posts an HTML-formatted message to the chat. Disabled notifiers
// return nil immediately.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if !n.Enabled() {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    n.chatID,
		"text":       message,
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("encoding telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// ApplicationFailed formats the failure alert for a job attempt.
func ApplicationFailed(job types.JobRecord, atsType, errMsg string) string {
	return fmt.Sprintf(`❌ <b>Application Failed</b>

Job: %s
Company: %s
ATS: %s
Error: %s

<a href="%s">View Job</a>`, job.Title, job.Company, atsType, errMsg, job.JobURL)
}
