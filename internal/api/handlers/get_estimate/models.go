package get_estimate

import (
	getEstimate "github.com/jeffjr007/locahubaju-project/internal/usecase/get_estimate"
)

type EstimateResponse struct {
	SpaceID    string  `json:"spaceId"`
	SpaceName  string  `json:"spaceName"`
	HourlyRate float64 `json:"hourlyRate"`
	Hours      int     `json:"hours"`
	Minutes    int     `json:"minutes"`
	TotalHours float64 `json:"totalHours"`
	Amount     float64 `json:"amount"`
	Formatted  string  `json:"formatted"`
}

func FromUseCaseResponse(r *getEstimate.Response) *EstimateResponse {
	return &EstimateResponse{
		SpaceID:    r.SpaceID,
		SpaceName:  r.SpaceName,
		HourlyRate: r.HourlyRate,
		Hours:      r.Hours,
		Minutes:    r.Minutes,
		TotalHours: r.TotalHours,
		Amount:     r.Amount,
		Formatted:  r.Formatted,
	}
}
