package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"content-calendar/internal/domain/entity"
)

// Slack Block Kit limits.
const (
	maxSectionTextLength = 3000
	maxFallbackLength    = 150

	slackTruncationSuffix = "..."
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	Enabled    bool
	WebhookURL string // Incoming Webhook URL, embeds the auth token
	Timeout    time.Duration
}

// LoadSlackConfigFromEnv reads SLACK_WEBHOOK_URL and SLACK_TIMEOUT.
// An unset URL disables the channel; a set but non-HTTPS URL is an error.
func LoadSlackConfigFromEnv() (SlackConfig, error) {
	cfg := SlackConfig{Timeout: 10 * time.Second}

	cfg.WebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	if cfg.WebhookURL == "" {
		return cfg, nil
	}
	if err := validateWebhookURL(cfg.WebhookURL); err != nil {
		return SlackConfig{}, fmt.Errorf("SLACK_WEBHOOK_URL: %w", err)
	}
	cfg.Enabled = true

	if v := os.Getenv("SLACK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg, nil
}

// SlackChannel sends publish notifications to Slack via Incoming Webhook.
// Slack Webhooks allow 1 message per second, hence the 1 req/s limiter.
type SlackChannel struct {
	sender *webhookSender
}

// NewSlackChannel creates a Slack channel from the configuration.
func NewSlackChannel(config SlackConfig) *SlackChannel {
	return &SlackChannel{
		sender: newWebhookSender("slack", config.WebhookURL, config.Timeout, 1.0, 1),
	}
}

func (s *SlackChannel) Name() string { return "slack" }

// slackPayload is the Block Kit payload posted to the webhook.
type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string            `json:"type"`
	Text     *slackTextObject  `json:"text,omitempty"`
	Elements []slackTextObject `json:"elements,omitempty"`
}

type slackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Send posts a Block Kit message announcing the published item.
func (s *SlackChannel) Send(ctx context.Context, item *entity.ContentItem) error {
	payload := buildSlackPayload(item)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}
	return s.sender.send(ctx, item.ID, body)
}

func buildSlackPayload(item *entity.ContentItem) slackPayload {
	fallback := truncate(fmt.Sprintf("Published: %s (%s)", item.Title, item.Platform),
		maxFallbackLength, slackTruncationSuffix)

	sectionText := fmt.Sprintf("*%s*\n\n%s", item.Title, item.Description)
	sectionText = truncate(sectionText, maxSectionTextLength, slackTruncationSuffix)

	contextText := fmt.Sprintf("%s | scheduled %s", item.Platform,
		item.ScheduledAt.UTC().Format(time.RFC3339))

	return slackPayload{
		Text: fallback,
		Blocks: []slackBlock{
			{
				Type: "section",
				Text: &slackTextObject{Type: "mrkdwn", Text: sectionText},
			},
			{
				Type: "context",
				Elements: []slackTextObject{
					{Type: "mrkdwn", Text: contextText},
				},
			},
		},
	}
}
