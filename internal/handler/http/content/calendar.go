package content

import (
	"errors"
	"net/http"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/handler/http/respond"
	contentUC "content-calendar/internal/usecase/content"
)

type CalendarHandler struct{ Svc *contentUC.Service }

type calendarDay struct {
	Date  string `json:"date"`
	Items []DTO  `json:"items"`
}

// ServeHTTP returns the caller's items bucketed by UTC day.
// @Summary      Calendar view
// @Description  Buckets the caller's items in [from, to) by UTC day. Every day of the range appears, empty days included, so clients can render a fixed grid. The range is capped at 100 days.
// @Tags         contents
// @Security     BearerAuth
// @Produce      json
// @Param        from query string true  "Range start (RFC3339 or YYYY-MM-DD)"
// @Param        to   query string true  "Range end, exclusive (RFC3339 or YYYY-MM-DD)"
// @Success      200 {array} calendarDay "Days with their items"
// @Failure      400 {string} string "Invalid range"
// @Failure      401 {string} string "Authentication required"
// @Router       /contents/calendar [get]
func (h CalendarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	if q.Get("from") == "" || q.Get("to") == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("from and to are required"))
		return
	}

	from, err := parseTimeParam(q.Get("from"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "from", Message: "must be an RFC3339 timestamp or YYYY-MM-DD date"})
		return
	}
	to, err := parseTimeParam(q.Get("to"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "to", Message: "must be an RFC3339 timestamp or YYYY-MM-DD date"})
		return
	}

	days, err := h.Svc.Calendar(r.Context(), userID, from, to)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]calendarDay, 0, len(days))
	for _, day := range days {
		resp = append(resp, calendarDay{Date: day.Date, Items: toDTOs(day.Items)})
	}
	respond.JSON(w, http.StatusOK, resp)
}
