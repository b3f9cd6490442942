package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"content-calendar/internal/domain/entity"
)

func testItem() *entity.ContentItem {
	return &entity.ContentItem{
		ID:          1,
		UserID:      7,
		Title:       "Launch announcement",
		Description: "The big day.",
		Platform:    entity.PlatformSocial,
		Status:      entity.StatusPosted,
		ScheduledAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func slackChannelFor(url string) *SlackChannel {
	return NewSlackChannel(SlackConfig{Enabled: true, WebhookURL: url, Timeout: 2 * time.Second})
}

func TestSlackChannel_Send(t *testing.T) {
	var got slackPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch := slackChannelFor(srv.URL)
	if err := ch.Send(context.Background(), testItem()); err != nil {
		t.Fatalf("Send err=%v", err)
	}

	if !strings.Contains(got.Text, "Launch announcement") {
		t.Errorf("fallback text = %q", got.Text)
	}
	if len(got.Blocks) != 2 || got.Blocks[0].Type != "section" || got.Blocks[1].Type != "context" {
		t.Errorf("blocks = %+v", got.Blocks)
	}
	if !strings.Contains(got.Blocks[0].Text.Text, "The big day.") {
		t.Errorf("section text = %q", got.Blocks[0].Text.Text)
	}
}

func TestSlackChannel_Send_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch := slackChannelFor(srv.URL)
	if err := ch.Send(context.Background(), testItem()); err != nil {
		t.Fatalf("Send err=%v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestSlackChannel_Send_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	ch := slackChannelFor(srv.URL)
	if err := ch.Send(context.Background(), testItem()); err == nil {
		t.Fatal("Send accepted a 400 response")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls.Load())
	}
}

func TestSlackChannel_Send_HonorsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0.01")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch := slackChannelFor(srv.URL)
	if err := ch.Send(context.Background(), testItem()); err != nil {
		t.Fatalf("Send err=%v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestLoadSlackConfigFromEnv(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantEnabled bool
		wantErr     bool
	}{
		{"unset disables", "", false, false},
		{"https enables", "https://hooks.slack.com/services/T/B/x", true, false},
		{"http rejected", "http://hooks.slack.com/services/T/B/x", false, true},
		{"no host rejected", "https://", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SLACK_WEBHOOK_URL", tt.url)

			cfg, err := LoadSlackConfigFromEnv()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", cfg.Enabled, tt.wantEnabled)
			}
		})
	}
}

func TestLoadSlackConfigFromEnv_Timeout(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/x")
	t.Setenv("SLACK_TIMEOUT", "3s")

	cfg, err := LoadSlackConfigFromEnv()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is too long", 10, "this is..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max, "..."); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
