package get_agenda

import (
	"context"

	getAgenda "github.com/jeffjr007/locahubaju-project/internal/usecase/get_agenda"
)

type AgendaUseCase interface {
	Execute(ctx context.Context, req *getAgenda.Request) (*getAgenda.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
