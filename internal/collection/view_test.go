package collection

import (
	"testing"

	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildViewVocabularyIgnoresFilter(t *testing.T) {
	snap := Snapshot{
		Items: []models.Item{
			item(1, "Batman", "9", 1, "40", "Key"),
			item(2, "Saga", "1", 2, "12.50", "variant"),
		},
		Conditions: testGrades,
	}

	view := BuildView(snap, Criteria{Query: "saga"})

	assert.Equal(t, []string{"Key", "variant"}, view.Tags)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Saga", view.Groups[0].Series)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, 1, view.ShownItems)
	assert.True(t, view.TotalValue.Equal(mustDecimal("52.50")))
	assert.Equal(t, ShowAll, view.Criteria.Condition)
	assert.Equal(t, ShowAll, view.Criteria.Tag)
}

func TestBuildViewEmptySnapshot(t *testing.T) {
	view := BuildView(Snapshot{}, Criteria{})

	assert.Empty(t, view.Groups)
	assert.Empty(t, view.Tags)
	assert.Empty(t, view.Conditions)
	assert.True(t, view.TotalValue.IsZero())
}
