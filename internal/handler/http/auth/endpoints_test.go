package auth

import "testing"

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health/", true},
		{"/health?format=json", true},
		{"/health/detail", false},
		{"/healthcheck", false},
		{"/ready", true},
		{"/live", true},
		{"/metrics", true},
		{"/swagger/", true},
		{"/swagger/index.html", true},
		{"/auth/token", true},
		{"/auth/signup", true},
		{"/auth/me", false},
		{"/auth/password", false},
		{"/contents", false},
		{"/contents/1", false},
		{"/billing/plans", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsPublicEndpoint(tt.path); got != tt.want {
				t.Errorf("IsPublicEndpoint(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
