package history

import (
	"context"
	"slices"
	"sync"

	"validarfc/internal/validation/models"
)

// InMemoryStore keeps records in process memory. Contents are lost on restart.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []models.Record
	// unordered is set once a record arrives older than its predecessor.
	unordered bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.records); n > 0 && record.CreatedAt.Before(s.records[n-1].CreatedAt) {
		s.unordered = true
	}
	s.records = append(s.records, record)
	return nil
}

// ListPage returns the total count and one window of records ordered by
// CreatedAt descending. Records sharing a timestamp come back newest insert
// first.
func (s *InMemoryStore) ListPage(_ context.Context, req models.PageRequest) (*models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.records)
	items := []models.Record{}
	if offset := req.Offset(); offset >= 0 && offset < total {
		count := min(req.PerPage, total-offset)
		if s.unordered {
			items = append(items, s.newestFirst()[offset:offset+count]...)
		} else {
			// Arrival order is timestamp order: walk back from the tail.
			for i := total - 1 - offset; i > total-1-offset-count; i-- {
				items = append(items, s.records[i])
			}
		}
	}

	return &models.Page{
		Total:   total,
		Page:    req.Page,
		PerPage: req.PerPage,
		Items:   items,
	}, nil
}

// newestFirst copies the log sorted by CreatedAt descending. Reversing before
// the stable sort keeps later inserts first among equal timestamps.
func (s *InMemoryStore) newestFirst() []models.Record {
	ordered := slices.Clone(s.records)
	slices.Reverse(ordered)
	slices.SortStableFunc(ordered, func(a, b models.Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return ordered
}
