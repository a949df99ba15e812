package get_agenda

import (
	"time"

	getAgenda "github.com/jeffjr007/locahubaju-project/internal/usecase/get_agenda"
)

type AgendaResponse struct {
	From   time.Time     `json:"from"`
	To     time.Time     `json:"to"`
	Spaces []SpaceAgenda `json:"spaces"`
}

type SpaceAgenda struct {
	SpaceID   string     `json:"spaceId"`
	SpaceName string     `json:"spaceName"`
	SpaceType string     `json:"spaceType"`
	Busy      []Interval `json:"busy"`
	Free      []Interval `json:"free"`
}

type Interval struct {
	ReservationID string    `json:"reservationId,omitempty"`
	Status        string    `json:"status,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

func FromUseCaseResponse(r *getAgenda.Response) *AgendaResponse {
	resp := &AgendaResponse{From: r.From, To: r.To, Spaces: make([]SpaceAgenda, 0, len(r.Spaces))}
	for _, s := range r.Spaces {
		item := SpaceAgenda{
			SpaceID:   s.SpaceID,
			SpaceName: s.SpaceName,
			SpaceType: string(s.SpaceType),
			Busy:      make([]Interval, 0, len(s.Busy)),
			Free:      make([]Interval, 0, len(s.Free)),
		}
		for _, b := range s.Busy {
			item.Busy = append(item.Busy, Interval{ReservationID: b.ReservationID, Status: string(b.Status), Start: b.Start, End: b.End})
		}
		for _, f := range s.Free {
			item.Free = append(item.Free, Interval{Start: f.Start, End: f.End})
		}
		resp.Spaces = append(resp.Spaces, item)
	}
	return resp
}
