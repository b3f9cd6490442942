// Package billing exposes the subscription plan REST endpoints.
package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"content-calendar/internal/handler/http/auth"
	"content-calendar/internal/handler/http/respond"
	authservice "content-calendar/internal/service/auth"
	billingUC "content-calendar/internal/usecase/billing"
)

type PlansHandler struct{ Svc *billingUC.Service }

// ServeHTTP lists the available plans.
// @Summary      List plans
// @Description  Returns the plan catalog with limits, prices and features.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} billingUC.Plan "Available plans"
// @Failure      401 {string} string "Authentication required"
// @Router       /billing/plans [get]
func (h PlansHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.Plans())
}

type SubscriptionHandler struct{ Svc *billingUC.Service }

// ServeHTTP returns the caller's current subscription.
// @Summary      Current subscription
// @Description  Returns the plan the caller is subscribed to.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} billingUC.Subscription "Current subscription"
// @Failure      401 {string} string "Authentication required"
// @Router       /billing/subscription [get]
func (h SubscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireAccount(w, r)
	if !ok {
		return
	}

	sub, err := h.Svc.SubscriptionFor(r.Context(), identity.UserID)
	if err != nil {
		respondBillingError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, sub)
}

type SubscribeHandler struct{ Svc *billingUC.Service }

// ServeHTTP switches the caller onto a plan.
// @Summary      Change subscription
// @Description  Subscribes the caller to the named plan. Payment collection is out of band; the endpoint records the plan choice.
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body object true "Plan code"
// @Success      200 {object} billingUC.Subscription "New subscription"
// @Failure      400 {string} string "Unknown plan"
// @Failure      401 {string} string "Authentication required"
// @Router       /billing/subscription [post]
func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	sub, err := h.Svc.Subscribe(r.Context(), identity.UserID, req.Plan)
	if err != nil {
		respondBillingError(w, err)
		return
	}

	slog.Info("subscription changed",
		slog.Int64("user_id", identity.UserID),
		slog.String("plan", req.Plan))
	respond.JSON(w, http.StatusOK, sub)
}

// requireAccount resolves the identity and rejects the bootstrap admin,
// which has no user row to hang a subscription on.
func requireAccount(w http.ResponseWriter, r *http.Request) (*authservice.Identity, bool) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return nil, false
	}
	if identity.UserID == 0 {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("subscription cannot be managed for this account"))
		return nil, false
	}
	return identity, true
}

func respondBillingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billingUC.ErrUnknownPlan):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, billingUC.ErrUserNotFound):
		respond.SafeError(w, http.StatusUnauthorized, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// Register registers the billing HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *billingUC.Service) {
	mux.Handle("GET  /billing/plans", auth.Authz(PlansHandler{svc}))
	mux.Handle("GET  /billing/subscription", auth.Authz(SubscriptionHandler{svc}))
	mux.Handle("POST /billing/subscription", auth.Authz(SubscribeHandler{svc}))
}
