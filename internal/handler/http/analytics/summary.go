// Package analytics exposes the content analytics REST endpoints.
package analytics

import (
	"errors"
	"log/slog"
	"net/http"

	"content-calendar/internal/handler/http/auth"
	"content-calendar/internal/handler/http/respond"
	analyticsUC "content-calendar/internal/usecase/analytics"
)

type SummaryHandler struct{ Svc *analyticsUC.Service }

// ServeHTTP returns the caller's content statistics.
// @Summary      Analytics summary
// @Description  Returns total item count, breakdowns by platform and status, and the per-day counts for the next seven days.
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} analyticsUC.Summary "Content statistics"
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "Server error"
// @Router       /analytics/summary [get]
func (h SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	summary, err := h.Svc.Summarize(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to build analytics summary",
			slog.Int64("user_id", identity.UserID),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, summary)
}

// Register registers the analytics HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *analyticsUC.Service) {
	mux.Handle("GET /analytics/summary", auth.Authz(SummaryHandler{svc}))
}
