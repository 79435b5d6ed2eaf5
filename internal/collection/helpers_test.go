package collection

import (
	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
)

var testGrades = []models.ConditionGrade{
	{ID: 1, Code: "NM", Description: "Near Mint"},
	{ID: 2, Code: "VF", Description: "Very Fine"},
	{ID: 3, Code: "FN", Description: "Fine"},
}

func ptr[T any](v T) *T { return &v }

// item builds an item whose embedded grade is resolved from testGrades
func item(id int64, series, issue string, conditionID int64, value string, tags string) models.Item {
	it := models.Item{
		ID:           id,
		Series:       series,
		Issue:        issue,
		CurrentValue: decimal.RequireFromString(value),
	}
	if conditionID != 0 {
		it.ConditionID = ptr(conditionID)
		for _, g := range testGrades {
			if g.ID == conditionID {
				it.Condition = ptr(g)
			}
		}
	}
	if tags != "" {
		it.Tags = ptr(tags)
	}
	return it
}

func ids(items []models.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func groupKeys(groups []models.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Series+"#"+g.Issue)
	}
	return out
}
