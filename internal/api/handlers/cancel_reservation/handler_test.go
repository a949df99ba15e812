package cancel_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations/models"
	"github.com/jeffjr007/locahubaju-project/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, actor domain.Actor, id string) (*models.ReservationResponse, error) {
	args := m.Called(ctx, actor, id)
	if resp, ok := args.Get(0).(*models.ReservationResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc ReservationService, withActor bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{reservationId}/cancel", NewHandler(svc, logger.Discard()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/r-1/cancel", nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: "alice"}))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"cancelled", nil, http.StatusOK},
		{"not found", reservations.ErrNotFound, http.StatusNotFound},
		{"not owner", reservations.ErrAccessDenied, http.StatusForbidden},
		{"already cancelled", fmt.Errorf("%w: status cancelled", reservations.ErrInvalidTransition), http.StatusConflict},
		{"storage", reservations.ErrStorage, http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			var resp *models.ReservationResponse
			if tt.err == nil {
				resp = &models.ReservationResponse{ID: "r-1", Status: string(domain.StatusCancelled)}
			}
			svc.On("Cancel", mock.Anything, domain.Actor{UserID: "alice"}, "r-1").Return(resp, tt.err).Once()

			rec := serve(svc, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_RequiresActor(t *testing.T) {
	svc := &mockService{}

	rec := serve(svc, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
