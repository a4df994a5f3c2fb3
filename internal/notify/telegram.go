// Package notify delivers the finished briefing to a Telegram chat.
// Delivery is best effort: the pipeline succeeds even when Telegram is
// down, the briefing is already persisted by then.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/cleanecon/newsbrief/internal/briefing"
	"github.com/cleanecon/newsbrief/internal/retry"
)

const telegramAPI = "https://api.telegram.org"

// Telegram caps messages at 4096 chars; leave headroom for the closing tag.
const maxMessageLength = 4000

type Notifier struct {
	token      string
	chatID     string
	endpoint   string
	retryDelay time.Duration
	httpClient *http.Client
}

func NewNotifier(token, chatID string, timeout time.Duration) *Notifier {
	return &Notifier{
		token:      token,
		chatID:     chatID,
		endpoint:   telegramAPI,
		retryDelay: 2 * time.Second,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendBriefing posts the briefing as one HTML-formatted message.
func (n *Notifier) SendBriefing(ctx context.Context, b briefing.Briefing) error {
	message := formatBriefing(b)

	return retry.Do(ctx, retry.Config{MaxAttempts: 3, Delay: n.retryDelay, Backoff: true}, func() error {
		return n.sendMessage(ctx, message)
	})
}

func (n *Notifier) sendMessage(ctx context.Context, text string) error {
	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.endpoint, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram status %d", resp.StatusCode)
	}
	return nil
}

func formatBriefing(b briefing.Briefing) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>%s</b>\n\n", html.EscapeString(b.Title))
	if b.SummaryText != "" {
		fmt.Fprintf(&sb, "%s\n\n", html.EscapeString(b.SummaryText))
	}

	if len(b.KeyDevelopments) > 0 {
		sb.WriteString("<b>Key Developments</b>\n")
		for _, dev := range b.KeyDevelopments {
			fmt.Fprintf(&sb, "• %s\n", html.EscapeString(dev))
		}
		sb.WriteString("\n")
	}

	if b.StrategicImplications != "" {
		fmt.Fprintf(&sb, "<b>Strategic Implications</b>\n%s\n\n", html.EscapeString(b.StrategicImplications))
	}
	if b.SuggestedReactions != "" {
		fmt.Fprintf(&sb, "<b>Suggested Reactions</b>\n%s\n\n", html.EscapeString(b.SuggestedReactions))
	}

	if len(b.RelatedArticleURLs) > 0 {
		sb.WriteString("<b>Articles</b>\n")
		for _, u := range b.RelatedArticleURLs {
			fmt.Fprintf(&sb, "%s\n", html.EscapeString(u))
		}
	}

	message := strings.TrimSpace(sb.String())
	if len(message) > maxMessageLength {
		message = message[:maxMessageLength] + "…"
	}
	return message
}
