package list_spaces

import (
	"context"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

type SpaceDirectory interface {
	List(ctx context.Context) ([]*domain.Space, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
