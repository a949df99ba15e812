package get_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
	getReport "github.com/jeffjr007/locahubaju-project/internal/usecase/get_report"
)

const (
	msgUnauthorized = "autenticação necessária"
	msgForbidden    = "relatórios disponíveis apenas para administradores"
	msgInvalidRange = "período inválido: use RFC3339 ou AAAA-MM-DD e from <= to"
)

type Handler struct {
	useCase  ReportUseCase
	location *time.Location
	logger   Logger
}

// NewHandler loc - часовой пояс, в котором трактуются даты без времени
func NewHandler(useCase ReportUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/reports?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	from, err := handlers.ParseTimeParam(r.URL.Query().Get("from"), h.location, false)
	if err != nil {
		h.logger.Warn("GET /reports - Invalid 'from': %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.ParseTimeParam(r.URL.Query().Get("to"), h.location, true)
	if err != nil {
		h.logger.Warn("GET /reports - Invalid 'to': %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getReport.Request{Actor: actor, From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, getReport.ErrAccessDenied):
			h.logger.Warn("GET /reports - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getReport.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /reports - Failed to build report: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports - Report built: user_id=%s, total=%d", actor.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
