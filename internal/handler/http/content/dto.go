// Package content exposes the content item REST endpoints.
package content

import (
	"errors"
	"net/http"
	"time"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/handler/http/auth"
	"content-calendar/internal/handler/http/respond"
	contentUC "content-calendar/internal/usecase/content"
)

// DTO is the wire representation of a content item.
type DTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Platform    string    `json:"platform"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDTO(item *entity.ContentItem) DTO {
	return DTO{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Platform:    string(item.Platform),
		Status:      string(item.Status),
		ScheduledAt: item.ScheduledAt,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toDTOs(items []*entity.ContentItem) []DTO {
	dtos := make([]DTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item))
	}
	return dtos
}

// currentUserID pulls the authenticated user from the request context.
// Writes a 401 and returns false when the middleware did not run.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return 0, false
	}
	return identity.UserID, true
}

// requireAccount additionally rejects the bootstrap admin, which has no
// user row to own content items or hang a plan quota on.
func requireAccount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return 0, false
	}
	if userID == 0 {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("content cannot be created for this account"))
		return 0, false
	}
	return userID, true
}

// respondServiceError maps use case errors onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, contentUC.ErrContentNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, contentUC.ErrInvalidContentID):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, contentUC.ErrQuotaExceeded):
		respond.SafeError(w, http.StatusForbidden, err)
	case errors.As(err, &vErr):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// parseTimeParam accepts RFC3339 timestamps and bare dates (2006-01-02).
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
