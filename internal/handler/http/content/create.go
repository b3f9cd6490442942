package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/handler/http/respond"
	"content-calendar/internal/observability/metrics"
	contentUC "content-calendar/internal/usecase/content"
)

type CreateHandler struct{ Svc *contentUC.Service }

// ServeHTTP creates a content item.
// @Summary      Create content item
// @Description  Creates a new content item for the caller. Status defaults to draft.
// @Tags         contents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        content body object true "Content item fields"
// @Success      201 {object} DTO "Created item"
// @Failure      400 {string} string "Validation failed"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Plan quota exceeded"
// @Router       /contents [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Platform    string `json:"platform"`
		Status      string `json:"status"`
		ScheduledAt string `json:"scheduled_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	var scheduledAt time.Time
	if req.ScheduledAt != "" {
		var err error
		scheduledAt, err = time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("scheduled_at must be in RFC3339 format"))
			return
		}
	}

	item, err := h.Svc.Create(r.Context(), userID, contentUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Platform:    entity.Platform(req.Platform),
		Status:      entity.Status(req.Status),
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordContentItemCreated(string(item.Platform))
	respond.JSON(w, http.StatusCreated, toDTO(item))
}
