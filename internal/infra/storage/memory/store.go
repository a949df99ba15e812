// Package memory хранилище бронирований в памяти процесса.
//
// Все пишущие транзакции сериализуются одним мьютексом процесса, поэтому драйвер
// корректен только при одном инстансе сервиса. Для нескольких инстансов используется postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	reservationRepo "github.com/jeffjr007/locahubaju-project/internal/infra/storage/reservation"
	"github.com/jeffjr007/locahubaju-project/internal/service/conflicts"
)

// Store хранилище бронирований, совместимое с postgres-репозиторием по контракту и ошибкам
type Store struct {
	mu           sync.RWMutex
	reservations map[string]domain.Reservation
}

func NewStore() *Store {
	return &Store{reservations: make(map[string]domain.Reservation)}
}

// LockSpace не нужен: TxManager уже сериализует все пишущие транзакции
func (s *Store) LockSpace(_ context.Context, _ string) error {
	return nil
}

func (s *Store) FindActiveForSpace(_ context.Context, spaceID string) ([]*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(r domain.Reservation) bool {
		return r.SpaceID == spaceID && r.IsActive()
	}, byStartAsc), nil
}

// Insert повторяет exclusion constraint схемы: пересечение активных интервалов запрещено
func (s *Store) Insert(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reservations[res.ID]; exists {
		return nil, reservationRepo.ErrDuplicateID
	}
	if res.IsActive() && s.overlapsLocked(res.SpaceID, res.Start, res.End, res.ID) {
		return nil, reservationRepo.ErrOverlap
	}

	s.reservations[res.ID] = *res
	out := *res
	return &out, nil
}

func (s *Store) UpdateInterval(_ context.Context, id string, start, end, updatedAt time.Time) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok || !res.IsActive() {
		return nil, reservationRepo.ErrReservationNotFound
	}
	if s.overlapsLocked(res.SpaceID, start, end, id) {
		return nil, reservationRepo.ErrOverlap
	}

	res.Start, res.End, res.UpdatedAt = start, end, updatedAt
	s.reservations[id] = res
	return &res, nil
}

func (s *Store) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus, updatedAt time.Time) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	candidate := res
	candidate.Status = status
	if candidate.IsActive() && !res.IsActive() && s.overlapsLocked(res.SpaceID, res.Start, res.End, id) {
		return nil, reservationRepo.ErrOverlap
	}

	candidate.UpdatedAt = updatedAt
	s.reservations[id] = candidate
	return &candidate, nil
}

func (s *Store) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &res, nil
}

func (s *Store) FindInRange(_ context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rng := domain.DateRange{From: from, To: to}
	return s.filter(func(r domain.Reservation) bool {
		return rng.Intersects(r.Start, r.End)
	}, byStartAsc), nil
}

func (s *Store) FindByUser(_ context.Context, userID string, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(r domain.Reservation) bool {
		return r.UserID == userID && (status == nil || r.Status == *status)
	}, byStartDesc), nil
}

func (s *Store) overlapsLocked(spaceID string, start, end time.Time, excludeID string) bool {
	for _, r := range s.reservations {
		if r.SpaceID != spaceID || r.ID == excludeID || !r.IsActive() {
			continue
		}
		if conflicts.Overlaps(start, end, r.Start, r.End) {
			return true
		}
	}
	return false
}

func (s *Store) filter(keep func(domain.Reservation) bool, less func(a, b *domain.Reservation) bool) []*domain.Reservation {
	out := make([]*domain.Reservation, 0)
	for _, r := range s.reservations {
		if keep(r) {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// snapshot копия данных для отката неудачной транзакции
func (s *Store) snapshot() map[string]domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make(map[string]domain.Reservation, len(s.reservations))
	for k, v := range s.reservations {
		cp[k] = v
	}
	return cp
}

func (s *Store) restore(data map[string]domain.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = data
}

func byStartAsc(a, b *domain.Reservation) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.ID < b.ID
}

func byStartDesc(a, b *domain.Reservation) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.After(b.Start)
	}
	return a.ID < b.ID
}
