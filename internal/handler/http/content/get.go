package content

import (
	"net/http"

	"content-calendar/internal/handler/http/pathutil"
	"content-calendar/internal/handler/http/respond"
	contentUC "content-calendar/internal/usecase/content"
)

type GetHandler struct{ Svc *contentUC.Service }

// ServeHTTP fetches one content item.
// @Summary      Get content item
// @Description  Returns a single content item owned by the caller.
// @Tags         contents
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Content item ID"
// @Success      200 {object} DTO "Content item"
// @Failure      400 {string} string "Invalid ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Not found"
// @Router       /contents/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/contents/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.Get(r.Context(), userID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(item))
}
