package service

import (
	"context"
	"errors"
	"slices"

	"github.com/meur/shortbox/internal/models"
	"go.uber.org/zap"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Create adds an item from a form submission
func (s *Service) Create(ctx context.Context, form models.ItemForm) models.Result {
	if !s.Configured() {
		return s.fail(opCreate, ErrNotConfigured)
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return s.fail(opCreate, err)
	}

	payload := s.createPayload(ctx, &form)
	id, err := s.repo.CreateItem(ctx, s.userID, payload)
	if err != nil {
		return s.fail(opCreate, err)
	}

	s.logger.Info("item created",
		zap.Int64("id", id),
		zap.String("series", payload.Series),
		zap.String("issue", payload.Issue),
	)
	s.awaitVisible(ctx, opCreate, id, func(items []models.Item) bool {
		return indexOf(items, id) >= 0
	})
	return s.ok(opCreate, "Item added")
}

// Update changes the mutable fields of an item; the purchase price is never sent
func (s *Service) Update(ctx context.Context, id int64, form models.ItemForm) models.Result {
	if !s.Configured() {
		return s.fail(opUpdate, ErrNotConfigured)
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return s.fail(opUpdate, err)
	}

	payload := s.updatePayload(ctx, &form)
	if err := s.repo.UpdateItem(ctx, s.userID, id, payload); err != nil {
		return s.fail(opUpdate, err)
	}

	s.logger.Info("item updated", zap.Int64("id", id))
	s.awaitVisible(ctx, opUpdate, id, func(items []models.Item) bool {
		i := indexOf(items, id)
		return i >= 0 && reflectsUpdate(items[i], payload)
	})
	return s.ok(opUpdate, "Item updated")
}

// Delete removes an item
func (s *Service) Delete(ctx context.Context, id int64) models.Result {
	if !s.Configured() {
		return s.fail(opDelete, ErrNotConfigured)
	}

	if err := s.repo.DeleteItem(ctx, s.userID, id); err != nil {
		return s.fail(opDelete, err)
	}

	s.logger.Info("item deleted", zap.Int64("id", id))
	s.awaitVisible(ctx, opDelete, id, func(items []models.Item) bool {
		return indexOf(items, id) < 0
	})
	return s.ok(opDelete, "Item deleted")
}

func (s *Service) fail(op string, err error) models.Result {
	s.metrics.IncMutation(op, "failed")
	if !errors.Is(err, ErrNotConfigured) {
		s.logger.Warn("mutation failed", zap.String("op", op), zap.Error(err))
	}
	return models.Failure(err.Error())
}

func (s *Service) ok(op, message string) models.Result {
	s.metrics.IncMutation(op, "ok")
	return models.Success(message)
}

func indexOf(items []models.Item, id int64) int {
	return slices.IndexFunc(items, func(it models.Item) bool { return it.ID == id })
}

func reflectsUpdate(item models.Item, u *models.ItemUpdate) bool {
	if item.Series != u.Series || item.Issue != u.Issue || item.Notes != u.Notes {
		return false
	}
	if item.ConditionID == nil || *item.ConditionID != u.ConditionID {
		return false
	}
	if !item.CurrentValue.Equal(u.CurrentValue) {
		return false
	}
	return item.TagString() == stringOrEmpty(u.Tags)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
