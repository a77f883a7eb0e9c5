package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/client"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

// DefaultPageSize matches the feed's grid.
const DefaultPageSize = 12

type JobService interface {
	Feed(ctx context.Context, page, limit int) (client.JobsPage, error)
}

type jobService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewJobService(c client.Client, store *session.Store, log logging.Logger) JobService {
	if log == nil {
		log = logging.Nop()
	}
	return &jobService{client: c, store: store, log: log.With("component", "jobs")}
}

// Feed fetches one page of open jobs. A rejected token ends the session, so
// the gate sends the user back to the login page.
func (s *jobService) Feed(ctx context.Context, page, limit int) (client.JobsPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	res, err := s.client.Jobs(ctx, page, limit)
	if errors.Is(err, client.ErrUnauthorized) {
		s.log.Info(ctx, "token rejected, logging out")
		if lerr := s.store.Logout(ctx); lerr != nil {
			s.log.Error(ctx, "logout after rejected token failed", "error", lerr)
		}
	}
	if err != nil {
		return client.JobsPage{}, fmt.Errorf("job feed error: %w", err)
	}
	return res, nil
}
