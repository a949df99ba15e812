package list_spaces

import (
	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// SpaceResponse пространство в публичном каталоге
type SpaceResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Capacity    int      `json:"capacity"`
	HourlyRate  *float64 `json:"hourlyRate"`
	Active      bool     `json:"active"`
	Description *string  `json:"description,omitempty"`
}

type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
}

// FromDomain конвертирует список пространств; неактивные скрываются, если includeInactive=false
func FromDomain(spaces []*domain.Space, includeInactive bool) *SpaceListResponse {
	resp := &SpaceListResponse{Spaces: make([]SpaceResponse, 0, len(spaces))}
	for _, s := range spaces {
		if s == nil || (!s.Active && !includeInactive) {
			continue
		}
		resp.Spaces = append(resp.Spaces, SpaceResponse{
			ID:          s.ID,
			Name:        s.Name,
			Type:        string(s.Type),
			Capacity:    s.Capacity,
			HourlyRate:  s.HourlyRate,
			Active:      s.Active,
			Description: s.Description,
		})
	}
	return resp
}
