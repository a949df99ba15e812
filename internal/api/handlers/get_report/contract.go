package get_report

import (
	"context"

	getReport "github.com/jeffjr007/locahubaju-project/internal/usecase/get_report"
)

type ReportUseCase interface {
	Execute(ctx context.Context, req *getReport.Request) (*getReport.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
