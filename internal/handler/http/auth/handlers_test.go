package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"content-calendar/internal/domain/entity"
	authservice "content-calendar/internal/service/auth"
)

func TestSignupHandler(t *testing.T) {
	repo := newStubUserRepo()
	h := &SignupHandler{Users: repo, Policy: NewUserProvider(repo)}

	body := `{"email":"new@example.com","password":"sturdy-passphrase-42"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
		Plan  string `json:"plan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.ID == 0 || resp.Email != "new@example.com" || resp.Role != entity.RoleMember || resp.Plan != "free" {
		t.Errorf("response = %+v", resp)
	}

	created := repo.byEmail["new@example.com"]
	if created == nil {
		t.Fatal("user not persisted")
	}
	if created.PasswordHash == "sturdy-passphrase-42" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("sturdy-passphrase-42")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestSignupHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"not-an-email","password":"sturdy-passphrase-42"}`},
		{"weak password", `{"email":"new@example.com","password":"password123456"}`},
		{"short password", `{"email":"new@example.com","password":"tiny"}`},
		{"malformed body", `{oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubUserRepo()
			h := &SignupHandler{Users: repo, Policy: NewUserProvider(repo)}

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Code = %d, want 400", rec.Code)
			}
			if len(repo.created) != 0 {
				t.Error("user created despite invalid input")
			}
		})
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&entity.User{ID: 1, Email: "taken@example.com", Role: entity.RoleMember})
	h := &SignupHandler{Users: repo, Policy: NewUserProvider(repo)}

	body := `{"email":"taken@example.com","password":"sturdy-passphrase-42"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Code = %d, want 409", rec.Code)
	}
}

func TestMeHandler(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&entity.User{
		ID: 7, Email: "user@example.com", Role: entity.RoleMember, Plan: "pro",
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	})
	h := &MeHandler{Users: repo}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(WithIdentity(req.Context(), &authservice.Identity{
		UserID: 7, Email: "user@example.com", Role: entity.RoleMember,
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		Plan      string `json:"plan"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.ID != 7 || resp.Plan != "pro" || resp.CreatedAt != "2026-01-15T10:00:00Z" {
		t.Errorf("response = %+v", resp)
	}
}

func TestMeHandler_BootstrapAdmin(t *testing.T) {
	h := &MeHandler{Users: newStubUserRepo()}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(WithIdentity(req.Context(), &authservice.Identity{
		Email: "root@example.com", Role: entity.RoleAdmin, Plan: "pro",
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"role":"admin"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestMeHandler_NoIdentity(t *testing.T) {
	h := &MeHandler{Users: newStubUserRepo()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", rec.Code)
	}
}

func TestPasswordHandler(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&entity.User{
		ID: 7, Email: "user@example.com",
		PasswordHash: mustHash(t, "old-sturdy-passphrase"),
		Role:         entity.RoleMember,
	})
	h := &PasswordHandler{Users: repo, Policy: NewUserProvider(repo)}

	body := `{"current_password":"old-sturdy-passphrase","new_password":"new-sturdy-passphrase"}`
	req := httptest.NewRequest(http.MethodPut, "/auth/password", strings.NewReader(body))
	req = req.WithContext(WithIdentity(req.Context(), &authservice.Identity{
		UserID: 7, Email: "user@example.com", Role: entity.RoleMember,
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Code = %d, body = %s", rec.Code, rec.Body.String())
	}

	newHash := repo.passwordUpdates[7]
	if newHash == "" {
		t.Fatal("password not updated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-sturdy-passphrase")); err != nil {
		t.Errorf("stored hash does not match new password: %v", err)
	}
}

func TestPasswordHandler_WrongCurrentPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&entity.User{
		ID: 7, Email: "user@example.com",
		PasswordHash: mustHash(t, "old-sturdy-passphrase"),
	})
	h := &PasswordHandler{Users: repo, Policy: NewUserProvider(repo)}

	body := `{"current_password":"not-the-old-one","new_password":"new-sturdy-passphrase"}`
	req := httptest.NewRequest(http.MethodPut, "/auth/password", strings.NewReader(body))
	req = req.WithContext(WithIdentity(req.Context(), &authservice.Identity{UserID: 7}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", rec.Code)
	}
	if len(repo.passwordUpdates) != 0 {
		t.Error("password updated despite failed verification")
	}
}

func TestPasswordHandler_WeakNewPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&entity.User{ID: 7, PasswordHash: mustHash(t, "old-sturdy-passphrase")})
	h := &PasswordHandler{Users: repo, Policy: NewUserProvider(repo)}

	body := `{"current_password":"old-sturdy-passphrase","new_password":"password1234"}`
	req := httptest.NewRequest(http.MethodPut, "/auth/password", strings.NewReader(body))
	req = req.WithContext(WithIdentity(req.Context(), &authservice.Identity{UserID: 7}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Code = %d, want 400", rec.Code)
	}
}

func TestPasswordHandler_BootstrapAdminRejected(t *testing.T) {
	repo := newStubUserRepo()
	h := &PasswordHandler{Users: repo, Policy: NewUserProvider(repo)}

	body := `{"current_password":"x","new_password":"new-sturdy-passphrase"}`
	req := httptest.NewRequest(http.MethodPut, "/auth/password", strings.NewReader(body))
	req = req.WithContext(WithIdentity(req.Context(), &authservice.Identity{
		UserID: 0, Email: "root@example.com", Role: entity.RoleAdmin,
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Code = %d, want 400", rec.Code)
	}
}
