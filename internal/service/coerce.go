package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fallbackConditionID is used when there is no grade snapshot to pick the best from
const fallbackConditionID int64 = 1

// parseMoney reads a monetary amount; anything unreadable is zero
func parseMoney(raw string) decimal.Decimal {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// parseTagString keeps the tag string as typed; blank means no tags
func parseTagString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// conditionFor resolves the form's condition; a non-numeric value becomes the best grade
func (s *Service) conditionFor(ctx context.Context, raw string) int64 {
	if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		return id
	}
	return s.bestConditionID(ctx)
}

func (s *Service) bestConditionID(ctx context.Context) int64 {
	grades, err := s.repo.ListConditions(ctx)
	if err != nil {
		s.logger.Warn("could not load grades for condition default", zap.Error(err))
		return fallbackConditionID
	}
	if len(grades) == 0 {
		return fallbackConditionID
	}
	return grades[0].ID
}

func (s *Service) createPayload(ctx context.Context, f *models.ItemForm) *models.ItemCreate {
	return &models.ItemCreate{
		Series:        f.Series,
		Issue:         f.Issue,
		ConditionID:   s.conditionFor(ctx, f.ConditionID),
		PurchasePrice: parseMoney(f.PurchasePrice),
		CurrentValue:  parseMoney(f.CurrentValue),
		Notes:         f.Notes,
		Tags:          parseTagString(f.Tags),
	}
}

// updatePayload ignores f.PurchasePrice: the purchase price is fixed at creation
func (s *Service) updatePayload(ctx context.Context, f *models.ItemForm) *models.ItemUpdate {
	return &models.ItemUpdate{
		Series:       f.Series,
		Issue:        f.Issue,
		ConditionID:  s.conditionFor(ctx, f.ConditionID),
		CurrentValue: parseMoney(f.CurrentValue),
		Notes:        f.Notes,
		Tags:         parseTagString(f.Tags),
	}
}
