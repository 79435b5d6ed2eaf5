package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
)

// fakeRepo is an in-memory store whose reads can lag behind its writes
type fakeRepo struct {
	mu sync.Mutex

	grades  []models.ConditionGrade
	items   []models.Item
	visible []models.Item
	nextID  int64

	lag        int // reads that still see the previous state after a write
	staleReads int
	listCalls  int

	createErr error
	listErr   error
	gradesErr error
}

func newFakeRepo(grades ...models.ConditionGrade) *fakeRepo {
	return &fakeRepo{grades: grades, nextID: 100}
}

func (f *fakeRepo) ListConditions(ctx context.Context) ([]models.ConditionGrade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gradesErr != nil {
		return nil, f.gradesErr
	}
	return slices.Clone(f.grades), nil
}

func (f *fakeRepo) ListItems(ctx context.Context, userID string) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.staleReads > 0 {
		f.staleReads--
		return slices.Clone(f.visible), nil
	}
	f.visible = slices.Clone(f.items)
	return slices.Clone(f.items), nil
}

func (f *fakeRepo) CreateItem(ctx context.Context, userID string, c *models.ItemCreate) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	condID := c.ConditionID
	f.items = append(f.items, models.Item{
		ID:            f.nextID,
		UserID:        userID,
		Series:        c.Series,
		Issue:         c.Issue,
		PurchasePrice: c.PurchasePrice,
		CurrentValue:  c.CurrentValue,
		Notes:         c.Notes,
		Tags:          c.Tags,
		ConditionID:   &condID,
		Condition:     f.gradeLocked(condID),
		CreatedAt:     time.Now(),
	})
	f.staleReads = f.lag
	return f.nextID, nil
}

func (f *fakeRepo) UpdateItem(ctx context.Context, userID string, id int64, u *models.ItemUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := indexOf(f.items, id)
	if i < 0 {
		return errItemNotFound
	}
	condID := u.ConditionID
	item := f.items[i]
	item.Series = u.Series
	item.Issue = u.Issue
	item.CurrentValue = u.CurrentValue
	item.Notes = u.Notes
	item.Tags = u.Tags
	item.ConditionID = &condID
	item.Condition = f.gradeLocked(condID)
	f.items = slices.Clone(f.items)
	f.items[i] = item
	f.staleReads = f.lag
	return nil
}

func (f *fakeRepo) DeleteItem(ctx context.Context, userID string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := indexOf(f.items, id)
	if i < 0 {
		return errItemNotFound
	}
	f.items = slices.Delete(slices.Clone(f.items), i, i+1)
	f.staleReads = f.lag
	return nil
}

func (f *fakeRepo) gradeLocked(id int64) *models.ConditionGrade {
	for _, g := range f.grades {
		if g.ID == id {
			g := g
			return &g
		}
	}
	return nil
}

func (f *fakeRepo) seed(series, issue string, conditionID int64, value string) int64 {
	id, _ := f.CreateItem(context.Background(), "", &models.ItemCreate{
		Series:       series,
		Issue:        issue,
		ConditionID:  conditionID,
		CurrentValue: decimal.RequireFromString(value),
	})
	f.mu.Lock()
	f.staleReads = 0
	f.visible = slices.Clone(f.items)
	f.mu.Unlock()
	return id
}

func (f *fakeRepo) item(id int64) (models.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := indexOf(f.items, id)
	if i < 0 {
		return models.Item{}, false
	}
	return f.items[i], true
}
