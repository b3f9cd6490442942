package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"content-calendar/internal/domain/entity"
)

// Discord embed limits.
const (
	maxEmbedTitleLength       = 256
	maxEmbedDescriptionLength = 4096

	discordTruncationSuffix = "..."
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// LoadDiscordConfigFromEnv reads DISCORD_WEBHOOK_URL and DISCORD_TIMEOUT.
// An unset URL disables the channel; a set but non-HTTPS URL is an error.
func LoadDiscordConfigFromEnv() (DiscordConfig, error) {
	cfg := DiscordConfig{Timeout: 10 * time.Second}

	cfg.WebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	if cfg.WebhookURL == "" {
		return cfg, nil
	}
	if err := validateWebhookURL(cfg.WebhookURL); err != nil {
		return DiscordConfig{}, fmt.Errorf("DISCORD_WEBHOOK_URL: %w", err)
	}
	cfg.Enabled = true

	if v := os.Getenv("DISCORD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg, nil
}

// DiscordChannel sends publish notifications to a Discord webhook.
// Discord allows roughly 5 requests per 2 seconds per webhook.
type DiscordChannel struct {
	sender *webhookSender
}

// NewDiscordChannel creates a Discord channel from the configuration.
func NewDiscordChannel(config DiscordConfig) *DiscordChannel {
	return &DiscordChannel{
		sender: newWebhookSender("discord", config.WebhookURL, config.Timeout, 2.0, 5),
	}
}

func (d *DiscordChannel) Name() string { return "discord" }

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color"`
	Footer      *discordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

// Send posts an embed announcing the published item.
func (d *DiscordChannel) Send(ctx context.Context, item *entity.ContentItem) error {
	payload := discordPayload{Embeds: []discordEmbed{{
		Title:       truncate(item.Title, maxEmbedTitleLength, discordTruncationSuffix),
		Description: truncate(item.Description, maxEmbedDescriptionLength, discordTruncationSuffix),
		Color:       0x2ecc71,
		Footer:      &discordEmbedFooter{Text: fmt.Sprintf("published to %s", item.Platform)},
		Timestamp:   item.ScheduledAt.UTC().Format(time.RFC3339),
	}}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}
	return d.sender.send(ctx, item.ID, body)
}
