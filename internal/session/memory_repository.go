package session

import (
	"context"
	"sync"

	"github.com/streamhub/rewards-service/internal/rewards"
)

// memoryRepository implements Repository using in-memory storage. Aggregates
// do not survive a process restart; that is the intended lifecycle for this
// service.
type memoryRepository struct {
	mu          sync.Mutex
	newProgress func() *rewards.UserProgress
	sessions    map[string]*rewards.UserProgress
}

// NewMemoryRepository returns an in-memory repository. newProgress builds the
// aggregate handed to a user on first contact.
func NewMemoryRepository(newProgress func() *rewards.UserProgress) Repository {
	return &memoryRepository{
		newProgress: newProgress,
		sessions:    make(map[string]*rewards.UserProgress),
	}
}

func (r *memoryRepository) Update(_ context.Context, userID string, fn func(p *rewards.UserProgress) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	progress, ok := r.sessions[userID]
	if !ok {
		progress = r.newProgress()
		r.sessions[userID] = progress
	}

	return fn(progress)
}

func (r *memoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		return ErrNotFound
	}

	delete(r.sessions, userID)
	return nil
}

func (r *memoryRepository) UserIDs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}
