package edit_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidTime        = "formato de data/hora inválido, esperado RFC3339"
	msgUnauthorized       = "autenticação necessária"
	msgNotFound           = "reserva não encontrada"
	msgForbidden          = "acesso negado"
	msgCannotEdit         = "reserva cancelada não pode ser alterada"
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

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	var req EditReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Edit(r.Context(), actor, reservationID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrValidation):
			h.logger.Warn("PATCH /reservations/{id} - Validation failed: reservation_id=%s: %v", reservationID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reservations.ErrNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: reservation_id=%s, user_id=%s", reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id} - Cannot edit: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgCannotEdit)

		case errors.Is(err, reservations.ErrConflict):
			h.logger.Warn("PATCH /reservations/{id} - Conflict: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, reservations.ErrStorage):
			h.logger.Error("PATCH /reservations/{id} - Storage failure: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to edit reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated successfully: reservation_id=%s, user_id=%s",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
