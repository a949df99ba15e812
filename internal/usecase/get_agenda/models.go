package get_agenda

import (
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// View период агенды
type View string

const (
	ViewDay  View = "day"
	ViewWeek View = "week"
)

// Request запрос агенды. Date интерпретируется в Location (по умолчанию UTC)
type Request struct {
	Date     time.Time
	View     View
	SpaceID  string // пусто - все активные пространства
	Location *time.Location
}

// Response занятость пространств за период [From, To)
type Response struct {
	From   time.Time
	To     time.Time
	Spaces []SpaceAgenda
}

// SpaceAgenda занятые и свободные интервалы одного пространства
type SpaceAgenda struct {
	SpaceID   string
	SpaceName string
	SpaceType domain.SpaceType
	Busy      []Busy
	Free      []Window
}

// Busy активное бронирование; пользователь не раскрывается
type Busy struct {
	ReservationID string
	Start         time.Time
	End           time.Time
	Status        domain.ReservationStatus
}

// Window свободный интервал
type Window struct {
	Start time.Time
	End   time.Time
}
