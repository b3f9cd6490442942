package entity_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"content-calendar/internal/domain/entity"
)

func TestPlatformValid(t *testing.T) {
	tests := []struct {
		platform entity.Platform
		want     bool
	}{
		{entity.PlatformSocial, true},
		{entity.PlatformEmail, true},
		{entity.PlatformBlog, true},
		{entity.Platform(""), false},
		{entity.Platform("twitter"), false},
		{entity.Platform("SOCIAL"), false},
	}

	for _, tt := range tests {
		if got := tt.platform.Valid(); got != tt.want {
			t.Errorf("Platform(%q).Valid() = %v, want %v", tt.platform, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	tests := []struct {
		status entity.Status
		want   bool
	}{
		{entity.StatusDraft, true},
		{entity.StatusScheduled, true},
		{entity.StatusPosted, true},
		{entity.Status(""), false},
		{entity.Status("published"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestContentItemValidate(t *testing.T) {
	valid := entity.ContentItem{
		Title:       "Launch announcement",
		Platform:    entity.PlatformSocial,
		Status:      entity.StatusScheduled,
		ScheduledAt: time.Now(),
	}

	tests := []struct {
		name      string
		mutate    func(*entity.ContentItem)
		wantField string
	}{
		{
			name:   "valid item",
			mutate: func(c *entity.ContentItem) {},
		},
		{
			name:      "missing title",
			mutate:    func(c *entity.ContentItem) { c.Title = "" },
			wantField: "title",
		},
		{
			name:      "title too long",
			mutate:    func(c *entity.ContentItem) { c.Title = strings.Repeat("x", entity.MaxTitleLength+1) },
			wantField: "title",
		},
		{
			name:      "invalid platform",
			mutate:    func(c *entity.ContentItem) { c.Platform = "tiktok" },
			wantField: "platform",
		},
		{
			name:      "invalid status",
			mutate:    func(c *entity.ContentItem) { c.Status = "archived" },
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)

			err := item.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid address", "user@example.com", false},
		{"empty", "", true},
		{"missing domain", "user@", true},
		{"display name form", "User <user@example.com>", true},
		{"too long", strings.Repeat("a", entity.MaxEmailLength) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entity.ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}
