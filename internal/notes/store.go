package notes

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists notes.
type Store interface {
	Create(ctx context.Context, in Input) (Note, error)
	Get(ctx context.Context, id uuid.UUID) (Note, error)
	List(ctx context.Context) ([]Note, error)
	Update(ctx context.Context, id uuid.UUID, in Input) (Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryStore is a Store kept in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]Note
	order []uuid.UUID // insertion order
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes: make(map[uuid.UUID]Note),
		now:   time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, in Input) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}

	n := newNote(in, s.now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[n.ID] = n
	s.order = append(s.order, n.ID)
	return n, nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	return n, nil
}

// List returns notes in creation order.
func (s *MemoryStore) List(ctx context.Context) ([]Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Note, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.notes[id])
	}
	return list, nil
}

func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, in Input) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	n.Title, n.Body, n.UpdatedAt = in.Title, in.Body, s.now().UTC()
	s.notes[id] = n
	return n, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)
	s.order = slices.DeleteFunc(s.order, func(v uuid.UUID) bool { return v == id })
	return nil
}

func sortNotes(list []Note) {
	slices.SortFunc(list, func(a, b Note) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
}
