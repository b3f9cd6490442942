package billing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/handler/http/auth"
	billinghttp "content-calendar/internal/handler/http/billing"
	authservice "content-calendar/internal/service/auth"
	billingUC "content-calendar/internal/usecase/billing"
)

type stubUsers struct {
	users map[int64]*entity.User
	plans map[int64]string
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: map[int64]*entity.User{}, plans: map[int64]string{}}
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUsers) Create(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, _ int64, _ string) error { return nil }

func (s *stubUsers) UpdatePlan(_ context.Context, id int64, plan string) error {
	s.plans[id] = plan
	if u, ok := s.users[id]; ok {
		u.Plan = plan
	}
	return nil
}

func newService(users *stubUsers) *billingUC.Service {
	return &billingUC.Service{Users: users, Catalog: billingUC.DefaultCatalog()}
}

func asUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), &authservice.Identity{
		UserID: userID, Email: "user@example.com", Role: entity.RoleMember,
	}))
}

func TestPlansHandler(t *testing.T) {
	h := billinghttp.PlansHandler{Svc: newService(newStubUsers())}

	req := asUser(httptest.NewRequest(http.MethodGet, "/billing/plans", nil), 7)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Code = %d", rec.Code)
	}

	var plans []billingUC.Plan
	if err := json.Unmarshal(rec.Body.Bytes(), &plans); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(plans) < 2 {
		t.Fatalf("len(plans) = %d, want at least free and pro", len(plans))
	}
	if plans[0].Code != "free" {
		t.Errorf("plans[0].Code = %q, want free", plans[0].Code)
	}
}

func TestSubscriptionHandler(t *testing.T) {
	users := newStubUsers()
	users.users[7] = &entity.User{ID: 7, Email: "user@example.com", Plan: "pro"}
	h := billinghttp.SubscriptionHandler{Svc: newService(users)}

	req := asUser(httptest.NewRequest(http.MethodGet, "/billing/subscription", nil), 7)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var sub billingUC.Subscription
	if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if sub.Plan.Code != "pro" {
		t.Errorf("plan = %q, want pro", sub.Plan.Code)
	}
}

func TestSubscriptionHandler_NoIdentity(t *testing.T) {
	h := billinghttp.SubscriptionHandler{Svc: newService(newStubUsers())}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/billing/subscription", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", rec.Code)
	}
}

func TestSubscribeHandler(t *testing.T) {
	users := newStubUsers()
	users.users[7] = &entity.User{ID: 7, Email: "user@example.com", Plan: "free"}
	h := billinghttp.SubscribeHandler{Svc: newService(users)}

	body := `{"plan":"pro"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/billing/subscription", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Code = %d, body = %s", rec.Code, rec.Body.String())
	}
	if users.plans[7] != "pro" {
		t.Errorf("persisted plan = %q, want pro", users.plans[7])
	}
}

func TestSubscribeHandler_UnknownPlan(t *testing.T) {
	users := newStubUsers()
	users.users[7] = &entity.User{ID: 7, Plan: "free"}
	h := billinghttp.SubscribeHandler{Svc: newService(users)}

	body := `{"plan":"platinum"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/billing/subscription", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Code = %d, want 400", rec.Code)
	}
	if users.plans[7] != "" {
		t.Error("plan persisted despite unknown code")
	}
}

func TestSubscribeHandler_BootstrapAdminRejected(t *testing.T) {
	h := billinghttp.SubscribeHandler{Svc: newService(newStubUsers())}

	body := `{"plan":"pro"}`
	req := httptest.NewRequest(http.MethodPost, "/billing/subscription", strings.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), &authservice.Identity{
		UserID: 0, Email: "root@example.com", Role: entity.RoleAdmin,
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Code = %d, want 400", rec.Code)
	}
}
