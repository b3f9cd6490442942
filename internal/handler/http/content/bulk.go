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

type bulkItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	ScheduledAt string `json:"scheduled_at"`
}

type bulkItemResult struct {
	Index int    `json:"index"`
	ID    int64  `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type bulkCreateResponse struct {
	Results []bulkItemResult `json:"results"`
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
}

type BulkCreateHandler struct{ Svc *contentUC.Service }

// ServeHTTP creates up to 50 items in one call.
// @Summary      Bulk create content items
// @Description  Creates multiple content items in one request. Each item gets its own result entry; one invalid item does not abort the rest. The plan quota is checked against the whole batch up front.
// @Tags         contents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body object true "Items to create"
// @Success      200 {object} bulkCreateResponse "Per-item results"
// @Failure      400 {string} string "Validation failed"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Plan quota exceeded"
// @Router       /contents/bulk [post]
func (h BulkCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req struct {
		Items []bulkItemRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	inputs := make([]contentUC.CreateInput, 0, len(req.Items))
	for _, item := range req.Items {
		var scheduledAt time.Time
		if item.ScheduledAt != "" {
			var err error
			scheduledAt, err = time.Parse(time.RFC3339, item.ScheduledAt)
			if err != nil {
				respond.SafeError(w, http.StatusBadRequest,
					errors.New("scheduled_at must be in RFC3339 format"))
				return
			}
		}
		inputs = append(inputs, contentUC.CreateInput{
			Title:       item.Title,
			Description: item.Description,
			Platform:    entity.Platform(item.Platform),
			Status:      entity.Status(item.Status),
			ScheduledAt: scheduledAt,
		})
	}

	results, err := h.Svc.BulkCreate(r.Context(), userID, inputs)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := bulkCreateResponse{Results: make([]bulkItemResult, 0, len(results))}
	for _, res := range results {
		out := bulkItemResult{Index: res.Index, ID: res.ID}
		if res.Err != nil {
			// Repository failures must not leak driver detail per item.
			out.Error = respond.SafeMessage(res.Err)
			resp.Failed++
		} else {
			resp.Created++
		}
		resp.Results = append(resp.Results, out)
	}

	metrics.RecordBulkOperation("create", bulkOutcome(resp.Created, resp.Failed))
	respond.JSON(w, http.StatusOK, resp)
}

type BulkRescheduleHandler struct{ Svc *contentUC.Service }

// ServeHTTP moves a set of items in one call.
// @Summary      Bulk reschedule content items
// @Description  Moves a set of the caller's items. Set shift (a duration like "24h" or "-30m") to move every item by that amount, or new_start (RFC3339) to move the earliest item onto it keeping relative offsets. Exactly one of the two must be set. All items are checked before any write, so a bad ID moves nothing.
// @Tags         contents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body object true "IDs and either shift or new_start"
// @Success      200 {array} DTO "Rescheduled items"
// @Failure      400 {string} string "Validation failed"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Unknown or foreign item ID"
// @Router       /contents/bulk/reschedule [post]
func (h BulkRescheduleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		IDs      []int64 `json:"ids"`
		Shift    string  `json:"shift"`
		NewStart string  `json:"new_start"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	in := contentUC.BulkRescheduleInput{IDs: req.IDs}
	if req.Shift != "" {
		d, err := time.ParseDuration(req.Shift)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New(`shift must be a duration such as "24h" or "-30m"`))
			return
		}
		in.Shift = &d
	}
	if req.NewStart != "" {
		t, err := time.Parse(time.RFC3339, req.NewStart)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("new_start must be in RFC3339 format"))
			return
		}
		in.NewStart = &t
	}

	items, err := h.Svc.BulkReschedule(r.Context(), userID, in)
	if err != nil {
		metrics.RecordBulkOperation("reschedule", "failure")
		respondServiceError(w, err)
		return
	}

	metrics.RecordBulkOperation("reschedule", "success")
	respond.JSON(w, http.StatusOK, toDTOs(items))
}

func bulkOutcome(created, failed int) string {
	switch {
	case failed == 0:
		return "success"
	case created == 0:
		return "failure"
	default:
		return "partial"
	}
}
