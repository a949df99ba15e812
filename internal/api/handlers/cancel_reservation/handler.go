package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations"
)

const (
	msgUnauthorized       = "autenticação necessária"
	msgNotFound           = "reserva não encontrada"
	msgForbidden          = "acesso negado"
	msgAlreadyCancelled   = "reserva já cancelada"
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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	result, err := h.service.Cancel(r.Context(), actor, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reservations.ErrNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%s, user_id=%s",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already cancelled: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, reservations.ErrStorage):
			h.logger.Error("PATCH /reservations/{id}/cancel - Storage failure: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%s, user_id=%s",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
