package get_report

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
	"github.com/jeffjr007/locahubaju-project/internal/domain"
	getReport "github.com/jeffjr007/locahubaju-project/internal/usecase/get_report"
	"github.com/jeffjr007/locahubaju-project/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getReport.Request) (*getReport.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*getReport.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

var admin = domain.Actor{UserID: "root", IsAdmin: true}

func call(uc ReportUseCase, url string) *httptest.ResponseRecorder {
	loc, _ := time.LoadLocation("America/Maceio")
	h := NewHandler(uc, loc, logger.Discard())

	req := httptest.NewRequest(http.MethodGet, url, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), admin))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_DateOnlyBoundsUseLocalDay(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getReport.Request) bool {
		// America/Maceio = UTC-3
		return req.Actor == admin &&
			req.From.Equal(time.Date(2025, 8, 1, 3, 0, 0, 0, time.UTC)) &&
			req.To.Equal(time.Date(2025, 9, 1, 2, 59, 59, 999999999, time.UTC))
	})).Return(&getReport.Response{Total: 6}, nil).Once()

	rec := call(uc, "/api/v1/reports?from=2025-08-01&to=2025-08-31")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":6`)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{"bad from", "/api/v1/reports?from=ontem", nil, http.StatusBadRequest},
		{"not admin", "/api/v1/reports", getReport.ErrAccessDenied, http.StatusForbidden},
		{"inverted range", "/api/v1/reports?from=2025-09-01&to=2025-08-01", getReport.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/api/v1/reports", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			}

			rec := call(uc, tt.url)

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
