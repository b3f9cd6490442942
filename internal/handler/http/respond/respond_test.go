package respond

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, 201, map[string]string{"status": "created"})

	if rec.Code != 201 {
		t.Errorf("Code = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["status"] != "created" {
		t.Errorf("body = %v", body)
	}
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, 204, nil)

	if rec.Code != 204 {
		t.Errorf("Code = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantMsg  string
		verbatim bool
	}{
		{"validation passes through", 400, errors.New("title is required"), "title is required", true},
		{"not found passes through", 404, errors.New("content item not found"), "content item not found", true},
		{"quota passes through", 403, errors.New("plan item quota exceeded"), "plan item quota exceeded", true},
		{"db detail masked", 400, errors.New("dial tcp 10.0.0.5:5432: connection refused"), "internal server error", false},
		{"5xx always masked", 500, errors.New("title is required"), "internal server error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestSafeErrorV2_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	appErr := NewAppError(409, "item already exists", errors.New("pq: duplicate key"))
	SafeErrorV2(rec, 500, appErr)

	if rec.Code != 409 {
		t.Errorf("Code = %d, want AppError's 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "item already exists") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "duplicate key") {
		t.Error("internal detail leaked to the client")
	}
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"dsn password",
			"connect postgres://app:hunter2@db:5432/cal: refused",
			"connect postgres://app:****@db:5432/cal: refused",
		},
		{
			"slack webhook",
			"post https://hooks.slack.com/services/T0/B1/secret: 500",
			"post https://hooks.slack.com/services/****",
		},
		{
			"discord webhook",
			"post https://discord.com/api/webhooks/1/token: 500",
			"post https://discord.com/api/webhooks/****",
		},
		{
			"jwt",
			"parse eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0.c2ln failed",
			"parse ****.****.**** failed",
		},
		{"clean message stays", "title is required", "title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeError(errors.New(tt.in)); got != tt.want {
				t.Errorf("SanitizeError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSafeMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"validation passes through", errors.New("title is required"), "title is required"},
		{"enum message passes through", errors.New("platform must be one of social, email, blog"), "platform must be one of social, email, blog"},
		{
			"driver detail masked",
			errors.New(`create content item: pq: connection to "postgres://app:s3cretpw@db:5432/cal" lost`),
			"internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeMessage(tt.err); got != tt.want {
				t.Errorf("SafeMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
