package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/meur/shortbox/internal/models"
	"go.uber.org/zap"
)

var errNotVisible = errors.New("mutation not yet visible")

// awaitVisible re-reads the item list until observed reports true or the
// refetch bound runs out. The store may apply defaults or triggers, so the
// caller always renders from a fresh read afterwards.
func (s *Service) awaitVisible(ctx context.Context, op string, id int64, observed func([]models.Item) bool) bool {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.refetch.InitialInterval
	b.MaxInterval = s.refetch.MaxInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		s.metrics.IncRefetch()
		items, err := s.repo.ListItems(ctx, s.userID)
		if err != nil {
			return struct{}{}, err
		}
		if !observed(items) {
			return struct{}{}, errNotVisible
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(s.refetch.MaxTries),
		backoff.WithMaxElapsedTime(s.maxRefetchTime()),
	)
	if err != nil {
		s.metrics.IncUnsettled()
		s.logger.Warn("mutation not observed after refetch",
			zap.String("op", op),
			zap.Int64("id", id),
			zap.Uint("max_tries", s.refetch.MaxTries),
			zap.Error(err),
		)
		return false
	}
	return true
}

// maxRefetchTime caps total waiting; intervals are randomized up to 1.5x MaxInterval
func (s *Service) maxRefetchTime() time.Duration {
	return 2 * time.Duration(s.refetch.MaxTries) * s.refetch.MaxInterval
}
