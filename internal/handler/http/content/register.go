package content

import (
	"net/http"

	"content-calendar/internal/common/pagination"
	"content-calendar/internal/handler/http/auth"
	contentUC "content-calendar/internal/usecase/content"
)

// Register registers all content-related HTTP handlers with the given mux.
// Every route runs behind the auth middleware; fixed paths like /contents/calendar
// and /contents/bulk take precedence over the ID routes.
func Register(mux *http.ServeMux, svc *contentUC.Service, paginationCfg pagination.Config) {
	mux.Handle("GET    /contents", auth.Authz(ListHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("GET    /contents/calendar", auth.Authz(CalendarHandler{svc}))
	mux.Handle("GET    /contents/", auth.Authz(GetHandler{svc}))

	mux.Handle("POST   /contents", auth.Authz(CreateHandler{svc}))
	mux.Handle("POST   /contents/bulk", auth.Authz(BulkCreateHandler{svc}))
	mux.Handle("POST   /contents/bulk/reschedule", auth.Authz(BulkRescheduleHandler{svc}))
	mux.Handle("PUT    /contents/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /contents/", auth.Authz(DeleteHandler{svc}))
}
