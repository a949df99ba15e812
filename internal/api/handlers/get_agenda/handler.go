package get_agenda

import (
	"errors"
	"net/http"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	getAgenda "github.com/jeffjr007/locahubaju-project/internal/usecase/get_agenda"
)

const (
	msgInvalidDate   = "parâmetro date inválido, esperado AAAA-MM-DD"
	msgInvalidParams = "parâmetros inválidos"
	msgSpaceNotFound = "espaço não encontrado"
)

type Handler struct {
	useCase  AgendaUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase AgendaUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/agenda?date=&view=day|week&spaceId=
// Публичный endpoint - без авторизации, пользователи бронирований не раскрываются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := handlers.ParseTimeParam(q.Get("date"), h.location, false)
	if err != nil || date.IsZero() {
		h.logger.Warn("GET /agenda - Invalid date: %q", q.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAgenda.Request{
		Date:     date,
		View:     getAgenda.View(q.Get("view")),
		SpaceID:  q.Get("spaceId"),
		Location: h.location,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAgenda.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAgenda.ErrSpaceNotFound):
			handlers.RespondNotFound(w, msgSpaceNotFound)

		default:
			h.logger.Error("GET /agenda - Failed to build agenda: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
