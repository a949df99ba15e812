package notifier

import (
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/pricing"
)

// Значения поля acao, которые ожидает сценарий n8n
const (
	ActionCreated   = "criada"
	ActionEdited    = "editada"
	ActionCancelled = "cancelada"
)

// Payload тело уведомления. Ключи на португальском совпадают с полями сценария n8n
type Payload struct {
	ReservationID    string `json:"reservationId"`
	Action           string `json:"acao"`
	Name             string `json:"nome"`
	Phone            string `json:"telefone"`
	Email            string `json:"email"`
	SpaceName        string `json:"espaco"`
	SpaceType        string `json:"tipoEspaco"`
	Capacity         int    `json:"capacidade"`
	SpaceDescription string `json:"descricaoEspaco"`
	Date             string `json:"data"`
	StartTime        string `json:"horarioInicio"`
	EndTime          string `json:"horarioFim"`
	FullTime         string `json:"horarioCompleto"`
	Notes            string `json:"observacoes"`
	EstimatedValue   string `json:"valorEstimado,omitempty"`
}

// Notification событие вместе с уже собранным payload. Передаётся всем драйверам
type Notification struct {
	Event   domain.Event
	Payload Payload
}

// ActionFor возвращает значение acao для вида события
func ActionFor(kind domain.EventKind) string {
	switch kind {
	case domain.EventCreated:
		return ActionCreated
	case domain.EventEdited:
		return ActionEdited
	case domain.EventCancelled:
		return ActionCancelled
	default:
		return string(kind)
	}
}

// BuildPayload формирует payload; время переводится в loc
func BuildPayload(event domain.Event, loc *time.Location) Payload {
	if loc == nil {
		loc = time.UTC
	}

	start := event.Reservation.Start.In(loc)
	end := event.Reservation.End.In(loc)

	p := Payload{
		ReservationID: event.Reservation.ID,
		Action:        ActionFor(event.Kind),
		Date:          start.Format(domain.PayloadDateFormat),
		StartTime:     start.Format(domain.PayloadTimeFormat),
		EndTime:       end.Format(domain.PayloadTimeFormat),
		Notes:         event.Notes,
	}
	p.FullTime = p.Date + " das " + p.StartTime + " às " + p.EndTime

	if c := event.Contact; c != nil {
		p.Name = c.Name
		p.Phone = c.Phone
		p.Email = c.Email
	}

	if s := event.Space; s != nil {
		p.SpaceName = s.Name
		p.SpaceType = string(s.Type)
		p.Capacity = s.Capacity
		if s.Description != nil {
			p.SpaceDescription = *s.Description
		}
	}

	if event.EstimatedCost != nil {
		p.EstimatedValue = pricing.FormatBRL(*event.EstimatedCost)
	}

	return p
}
