package get_report

import (
	"sort"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/pricing"
)

// Aggregate считает статистику по бронированиям, пересекающим rng.
// Выручка, загрузка и распределение по типам учитывают только confirmed;
// стоимость пересчитывается по текущему тарифу пространства
func Aggregate(reservations []*domain.Reservation, spaces []*domain.Space, rng domain.DateRange) domain.Stats {
	spaceByID := make(map[string]*domain.Space, len(spaces))
	stats := domain.Stats{Range: rng}
	for _, s := range spaces {
		if s == nil {
			continue
		}
		spaceByID[s.ID] = s
		if s.Active {
			stats.ActiveSpaces++
		}
	}

	users := make(map[string]struct{})
	spacesSeen := make(map[string]struct{})
	occupancy := make(map[string]*domain.SpaceOccupancy)
	types := make(map[domain.SpaceType]int)

	for _, r := range reservations {
		if r == nil || !rng.Intersects(r.Start, r.End) {
			continue
		}

		stats.Total++
		users[r.UserID] = struct{}{}
		spacesSeen[r.SpaceID] = struct{}{}

		switch r.Status {
		case domain.StatusPending:
			stats.ByStatus.Pending++
		case domain.StatusConfirmed:
			stats.ByStatus.Confirmed++
		case domain.StatusCancelled:
			stats.ByStatus.Cancelled++
		}

		space := spaceByID[r.SpaceID]
		row := newRow(r, space)
		stats.Rows = append(stats.Rows, row)

		if r.Status != domain.StatusConfirmed {
			continue
		}

		if row.EstimatedCost != nil {
			stats.Revenue += *row.EstimatedCost
		}

		occ, ok := occupancy[r.SpaceID]
		if !ok {
			occ = &domain.SpaceOccupancy{SpaceID: r.SpaceID}
			if space != nil {
				occ.SpaceName = space.Name
			}
			occupancy[r.SpaceID] = occ
		}
		occ.Count++
		occ.ConfirmedHours += float64(row.Hours) + float64(row.Minutes)/60

		if space != nil {
			types[space.Type]++
		}
	}

	stats.DistinctUsers = len(users)
	stats.DistinctSpaces = len(spacesSeen)
	stats.Occupancy = rankOccupancy(occupancy)
	stats.TypeShares = rankTypes(types)

	sort.SliceStable(stats.Rows, func(i, j int) bool {
		if !stats.Rows[i].Start.Equal(stats.Rows[j].Start) {
			return stats.Rows[i].Start.Before(stats.Rows[j].Start)
		}
		return stats.Rows[i].ReservationID < stats.Rows[j].ReservationID
	})

	return stats
}

func newRow(r *domain.Reservation, space *domain.Space) domain.ReportRow {
	hours, minutes := pricing.Duration(r.Start, r.End)
	row := domain.ReportRow{
		ReservationID: r.ID,
		SpaceID:       r.SpaceID,
		UserID:        r.UserID,
		Status:        r.Status,
		Start:         r.Start,
		End:           r.End,
		Hours:         hours,
		Minutes:       minutes,
	}
	if space != nil {
		row.SpaceName = space.Name
		row.SpaceType = space.Type
		row.EstimatedCost = pricing.Amount(space.HourlyRate, r.Start, r.End)
	}
	return row
}

// rankOccupancy по убыванию количества, при равенстве по id пространства
func rankOccupancy(m map[string]*domain.SpaceOccupancy) []domain.SpaceOccupancy {
	out := make([]domain.SpaceOccupancy, 0, len(m))
	for _, occ := range m {
		out = append(out, *occ)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].SpaceID < out[j].SpaceID
	})
	return out
}

func rankTypes(m map[domain.SpaceType]int) []domain.TypeShare {
	out := make([]domain.TypeShare, 0, len(m))
	for t, n := range m {
		out = append(out, domain.TypeShare{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}
