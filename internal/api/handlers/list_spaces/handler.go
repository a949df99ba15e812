package list_spaces

import (
	"net/http"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
)

type Handler struct {
	spaces SpaceDirectory
	logger Logger
}

func NewHandler(spaces SpaceDirectory, logger Logger) *Handler {
	return &Handler{
		spaces: spaces,
		logger: logger,
	}
}

// Handle GET /api/v1/spaces?includeInactive=true
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	spaces, err := h.spaces.List(r.Context())
	if err != nil {
		h.logger.Error("GET /spaces - Failed to list spaces: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(spaces, includeInactive))
}
