package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/handler/http/pathutil"
	"content-calendar/internal/handler/http/respond"
	contentUC "content-calendar/internal/usecase/content"
)

type UpdateHandler struct{ Svc *contentUC.Service }

// ServeHTTP partially updates a content item.
// @Summary      Update content item
// @Description  Updates the provided fields of a content item owned by the caller. Omitted fields stay unchanged.
// @Tags         contents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Content item ID"
// @Param        content body object true "Fields to update"
// @Success      200 {object} DTO "Updated item"
// @Failure      400 {string} string "Validation failed"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Not found"
// @Router       /contents/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/contents/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	// Pointer fields distinguish "absent" from "set to zero value".
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Platform    *string `json:"platform"`
		Status      *string `json:"status"`
		ScheduledAt *string `json:"scheduled_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	in := contentUC.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Platform != nil {
		p := entity.Platform(*req.Platform)
		in.Platform = &p
	}
	if req.Status != nil {
		s := entity.Status(*req.Status)
		in.Status = &s
	}
	if req.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("scheduled_at must be in RFC3339 format"))
			return
		}
		in.ScheduledAt = &t
	}

	item, err := h.Svc.Update(r.Context(), userID, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(item))
}
