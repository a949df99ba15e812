package get_estimate

import (
	"context"

	getEstimate "github.com/jeffjr007/locahubaju-project/internal/usecase/get_estimate"
)

type EstimateUseCase interface {
	Execute(ctx context.Context, req *getEstimate.Request) (*getEstimate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
