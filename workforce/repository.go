// repository.go - In-memory worker directory.
//
// A simple keyed list with linear role filtering. The directory is a
// collaborator of the core subsystems, not one of them: it holds the Worker
// values whose LeaveDays field the leave manager mutates by reference.
package workforce

import "sync"

// Repository is an in-memory worker directory.
type Repository struct {
	mu      sync.RWMutex
	workers []*Worker
	byID    map[string]*Worker
}

// NewRepository creates an empty worker directory.
func NewRepository() *Repository {
	return &Repository{byID: make(map[string]*Worker)}
}

// Add stores a worker. Insertion order is preserved for listing.
func (r *Repository) Add(w *Worker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers = append(r.workers, w)
	r.byID[w.ID] = w
}

// Get returns the worker with the given ID, or ErrWorkerNotFound.
func (r *Repository) Get(id string) (*Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return nil, ErrWorkerNotFound
	}
	return w, nil
}

// All returns every worker in insertion order.
func (r *Repository) All() []*Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Worker, len(r.workers))
	copy(out, r.workers)
	return out
}

// FindByRole returns all workers with the given role, insertion order.
func (r *Repository) FindByRole(role Role) []*Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Worker
	for _, w := range r.workers {
		if w.Role == role {
			out = append(out, w)
		}
	}
	return out
}
