package content

import (
	"net/http"

	"content-calendar/internal/handler/http/pathutil"
	"content-calendar/internal/handler/http/respond"
	contentUC "content-calendar/internal/usecase/content"
)

type DeleteHandler struct{ Svc *contentUC.Service }

// ServeHTTP deletes a content item.
// @Summary      Delete content item
// @Description  Removes a content item owned by the caller.
// @Tags         contents
// @Security     BearerAuth
// @Param        id path int true "Content item ID"
// @Success      204 "Deleted"
// @Failure      400 {string} string "Invalid ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Not found"
// @Router       /contents/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/contents/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), userID, id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
