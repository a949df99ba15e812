package get_estimate

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	getEstimate "github.com/jeffjr007/locahubaju-project/internal/usecase/get_estimate"
)

const (
	msgInvalidTime         = "parâmetros start e end devem estar em RFC3339"
	msgInvalidInterval     = "start deve ser anterior a end"
	msgSpaceNotFound       = "espaço não encontrado"
	msgEstimateUnavailable = "estimativa indisponível: espaço sem valor por hora"
)

type Handler struct {
	useCase EstimateUseCase
	logger  Logger
}

func NewHandler(useCase EstimateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/estimate?start=&end=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["spaceId"]

	start, errStart := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	end, errEnd := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if errStart != nil || errEnd != nil {
		h.logger.Warn("GET /spaces/{id}/estimate - Invalid time params: space_id=%s", spaceID)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getEstimate.Request{SpaceID: spaceID, Start: start, End: end})
	if err != nil {
		switch {
		case errors.Is(err, getEstimate.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, getEstimate.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/estimate - Space not found: space_id=%s", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, getEstimate.ErrEstimateUnavailable):
			handlers.RespondBadRequest(w, msgEstimateUnavailable)

		default:
			h.logger.Error("GET /spaces/{id}/estimate - Failed to compute estimate: space_id=%s, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
