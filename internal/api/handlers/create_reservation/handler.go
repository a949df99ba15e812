package create_reservation

import (
	"errors"
	"net/http"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidTime        = "formato de data/hora inválido, esperado RFC3339"
	msgUnauthorized       = "autenticação necessária"
	msgConflict           = "o espaço já está reservado neste horário"
	msgStorageUnavailable = "serviço temporariamente indisponível, tente novamente"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Create(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrValidation):
			h.logger.Warn("POST /reservations - Validation failed: user_id=%s, space_id=%s: %v", actor.UserID, req.SpaceID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reservations.ErrConflict):
			h.logger.Warn("POST /reservations - Conflict: user_id=%s, space_id=%s", actor.UserID, req.SpaceID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, reservations.ErrStorage):
			h.logger.Error("POST /reservations - Storage failure: user_id=%s, space_id=%s, error=%v", actor.UserID, req.SpaceID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, space_id=%s, error=%v",
				actor.UserID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, user_id=%s, space_id=%s",
		result.ID, actor.UserID, result.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
