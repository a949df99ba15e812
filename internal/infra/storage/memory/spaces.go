package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	spaceRepo "github.com/jeffjr007/locahubaju-project/internal/infra/storage/space"
)

// SpaceDirectory справочник пространств в памяти
type SpaceDirectory struct {
	mu     sync.RWMutex
	spaces map[string]domain.Space
}

func NewSpaceDirectory(spaces ...*domain.Space) *SpaceDirectory {
	d := &SpaceDirectory{spaces: make(map[string]domain.Space, len(spaces))}
	for _, s := range spaces {
		d.Put(s)
	}
	return d
}

// Put добавляет или заменяет пространство
func (d *SpaceDirectory) Put(s *domain.Space) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.spaces[s.ID] = *s
}

func (d *SpaceDirectory) GetByID(_ context.Context, id string) (*domain.Space, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return &s, nil
}

func (d *SpaceDirectory) List(_ context.Context) ([]*domain.Space, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.Space, 0, len(d.spaces))
	for _, s := range d.spaces {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
