package get_estimate

import (
	"context"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// SpaceDirectory справочник пространств
type SpaceDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Space, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
