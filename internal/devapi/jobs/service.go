package jobs

import (
	"context"
	"errors"
	"fmt"
	"math"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

var (
	ErrInvalidPage  = errors.New("invalid page")
	ErrInvalidLimit = errors.New("invalid limit")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns page (1-based) of the open job feed, limit jobs per page.
// A page past the end comes back empty with the real totals.
func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	if page < 1 {
		return Page{}, ErrInvalidPage
	}
	if limit < 1 || limit > MaxLimit {
		return Page{}, ErrInvalidLimit
	}

	// A page whose offset does not fit in an int is past any end.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}

	jobs, total, err := s.repo.ListOpen(ctx, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("error listing jobs: %w", err)
	}

	return Page{
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		TotalJobs:  total,
		Jobs:       jobs,
	}, nil
}
