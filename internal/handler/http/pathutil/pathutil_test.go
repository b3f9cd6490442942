package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		prefix    string
		wantID    int64
		wantError error
	}{
		{
			name:   "valid content ID",
			path:   "/contents/123",
			prefix: "/contents/",
			wantID: 123,
		},
		{
			name:      "invalid ID - not a number",
			path:      "/contents/abc",
			prefix:    "/contents/",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - zero",
			path:      "/contents/0",
			prefix:    "/contents/",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - negative",
			path:      "/contents/-1",
			prefix:    "/contents/",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - empty",
			path:      "/contents/",
			prefix:    "/contents/",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - with extra path",
			path:      "/contents/123/publish",
			prefix:    "/contents/",
			wantError: ErrInvalidID,
		},
		{
			name:   "large valid ID",
			path:   "/contents/9223372036854775807",
			prefix: "/contents/",
			wantID: 9223372036854775807,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotErr := ExtractID(tt.path, tt.prefix)

			if gotID != tt.wantID {
				t.Errorf("ExtractID() id = %v, want %v", gotID, tt.wantID)
			}
			if !errors.Is(gotErr, tt.wantError) {
				t.Errorf("ExtractID() error = %v, want %v", gotErr, tt.wantError)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/contents/123", "/contents/:id"},
		{"/contents/456", "/contents/:id"},
		{"/contents/123/", "/contents/:id"},
		{"/contents/123?fields=title", "/contents/:id"},
		{"/users/7", "/users/:id"},
		{"/contents/calendar", "/contents/calendar"},
		{"/contents/bulk", "/contents/bulk"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/auth/token", "/auth/token"},
		{"/health?format=json", "/health"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
