// Package service is the boundary between the collection page and the store.
// It loads snapshots for the view pipeline and performs the add, edit and
// delete mutations, confirming each one against a fresh read of the store.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/meur/shortbox/internal/collection"
	"github.com/meur/shortbox/internal/config"
	"github.com/meur/shortbox/internal/metrics"
	"github.com/meur/shortbox/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotConfigured is reported when no store or user id is available
var ErrNotConfigured = errors.New("store is not configured")

// Repository is the subset of the store the service needs
type Repository interface {
	ListConditions(ctx context.Context) ([]models.ConditionGrade, error)
	ListItems(ctx context.Context, userID string) ([]models.Item, error)
	CreateItem(ctx context.Context, userID string, c *models.ItemCreate) (int64, error)
	UpdateItem(ctx context.Context, userID string, id int64, u *models.ItemUpdate) error
	DeleteItem(ctx context.Context, userID string, id int64) error
}

// Service serves one user's collection
type Service struct {
	repo    Repository
	userID  string
	refetch config.RefetchConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a service. A nil repo or empty user id yields an unconfigured
// service whose reads are empty and whose mutations fail.
func New(repo Repository, userID string, refetch config.RefetchConfig, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if refetch.MaxTries == 0 {
		refetch.MaxTries = 1
	}
	if refetch.InitialInterval <= 0 {
		refetch.InitialInterval = 50 * time.Millisecond
	}
	if refetch.MaxInterval < refetch.InitialInterval {
		refetch.MaxInterval = refetch.InitialInterval
	}
	return &Service{
		repo:    repo,
		userID:  userID,
		refetch: refetch,
		logger:  logger,
		metrics: m,
	}
}

// Configured reports whether the service can reach a store
func (s *Service) Configured() bool {
	return s.repo != nil && s.userID != ""
}

// Snapshot reads items and condition grades together
func (s *Service) Snapshot(ctx context.Context) (collection.Snapshot, error) {
	if !s.Configured() {
		return collection.Snapshot{Items: []models.Item{}, Conditions: []models.ConditionGrade{}}, nil
	}

	var snap collection.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.repo.ListItems(gctx, s.userID)
		snap.Items = items
		return err
	})
	g.Go(func() error {
		grades, err := s.repo.ListConditions(gctx)
		snap.Conditions = grades
		return err
	})
	if err := g.Wait(); err != nil {
		return collection.Snapshot{}, err
	}
	return snap, nil
}

// View loads a snapshot and runs the pipeline over it
func (s *Service) View(ctx context.Context, c collection.Criteria) (collection.View, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return collection.View{}, err
	}

	start := time.Now()
	view := collection.BuildView(snap, c)
	s.metrics.ObserveViewBuild(time.Since(start))
	return view, nil
}

// Conditions returns the grade snapshot, best first
func (s *Service) Conditions(ctx context.Context) ([]models.ConditionGrade, error) {
	if !s.Configured() {
		return []models.ConditionGrade{}, nil
	}
	return s.repo.ListConditions(ctx)
}

// Items returns the unfiltered item list
func (s *Service) Items(ctx context.Context) ([]models.Item, error) {
	if !s.Configured() {
		return []models.Item{}, nil
	}
	return s.repo.ListItems(ctx, s.userID)
}
