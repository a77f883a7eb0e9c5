package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type Repository interface {
	Add(ctx context.Context, job Job) (Job, error)
	// ListOpen returns open jobs newest first, skipping offset, plus the
	// total number of open jobs.
	ListOpen(ctx context.Context, offset, limit int) ([]Job, int, error)
}

type MemoryRepository struct {
	mu     sync.RWMutex
	jobs   []Job
	nextID int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, now: time.Now}
}

func (r *MemoryRepository) Add(_ context.Context, job Job) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = r.nextID
	r.nextID++
	if job.CreatedAt.IsZero() {
		job.CreatedAt = r.now()
	}
	if job.Status == "" {
		job.Status = StatusOpen
	}
	r.jobs = append(r.jobs, job)
	return job, nil
}

func (r *MemoryRepository) ListOpen(_ context.Context, offset, limit int) ([]Job, int, error) {
	if offset < 0 {
		return nil, 0, fmt.Errorf("%w: offset %d", ErrInvalidPage, offset)
	}
	if limit < 1 {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	r.mu.RLock()
	open := make([]Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.Status == StatusOpen {
			open = append(open, j)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(open, func(i, k int) bool {
		if !open[i].CreatedAt.Equal(open[k].CreatedAt) {
			return open[i].CreatedAt.After(open[k].CreatedAt)
		}
		return open[i].ID > open[k].ID
	})

	total := len(open)
	if offset >= total {
		return []Job{}, total, nil
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	return open[offset:end], total, nil
}
