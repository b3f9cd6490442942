package content

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"content-calendar/internal/common/pagination"
	"content-calendar/internal/domain/entity"
	"content-calendar/internal/handler/http/requestid"
	"content-calendar/internal/handler/http/respond"
	"content-calendar/internal/repository"
	contentUC "content-calendar/internal/usecase/content"
)

type ListHandler struct {
	Svc           *contentUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP lists the caller's content items.
// @Summary      List content items
// @Description  Returns one page of the caller's content items, optionally filtered by platform, status and scheduled date range.
// @Tags         contents
// @Security     BearerAuth
// @Produce      json
// @Param        page     query  int     false  "Page number (1-based)" default(1) minimum(1)
// @Param        limit    query  int     false  "Items per page" default(20) minimum(1) maximum(100)
// @Param        platform query  string  false  "Platform filter, repeatable (social|email|blog)"
// @Param        status   query  string  false  "Status filter, repeatable (draft|scheduled|posted)"
// @Param        from     query  string  false  "Scheduled-at lower bound (RFC3339 or YYYY-MM-DD)"
// @Param        to       query  string  false  "Scheduled-at upper bound (RFC3339 or YYYY-MM-DD)"
// @Success      200 {object} pagination.Response[DTO] "Paginated content items"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      401 {string} string "Authentication required"
// @Router       /contents [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	reqID := requestid.FromContext(ctx)

	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filters, err := parseFilters(r)
	if err != nil {
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.List(ctx, userID, filters, params)
	if err != nil {
		slog.Error("failed to list content items",
			slog.Int64("user_id", userID),
			slog.String("request_id", reqID),
			slog.Any("error", err))
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Pagination.Total)

	slog.Info("content list request",
		slog.Int64("user_id", userID),
		slog.Int("page", params.Page),
		slog.Int("returned_count", len(result.Data)),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("request_id", reqID))

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Data), result.Pagination))
}

// parseFilters builds repository filters from the query string.
// platform and status are repeatable; unknown values are rejected.
func parseFilters(r *http.Request) (repository.ContentFilters, error) {
	var filters repository.ContentFilters
	q := r.URL.Query()

	for _, raw := range q["platform"] {
		p := entity.Platform(raw)
		if !p.Valid() {
			return filters, &entity.ValidationError{
				Field:   "platform",
				Message: fmt.Sprintf("%q is not a valid platform", raw),
			}
		}
		filters.Platforms = append(filters.Platforms, p)
	}

	for _, raw := range q["status"] {
		s := entity.Status(raw)
		if !s.Valid() {
			return filters, &entity.ValidationError{
				Field:   "status",
				Message: fmt.Sprintf("%q is not a valid status", raw),
			}
		}
		filters.Statuses = append(filters.Statuses, s)
	}

	if raw := q.Get("from"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return filters, &entity.ValidationError{
				Field:   "from",
				Message: "must be an RFC3339 timestamp or YYYY-MM-DD date",
			}
		}
		filters.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return filters, &entity.ValidationError{
				Field:   "to",
				Message: "must be an RFC3339 timestamp or YYYY-MM-DD date",
			}
		}
		filters.To = &t
	}

	return filters, nil
}
