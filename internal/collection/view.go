package collection

import (
	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
)

// Snapshot is one authoritative read of the store. Treat it as immutable.
type Snapshot struct {
	Items      []models.Item           `json:"items"`
	Conditions []models.ConditionGrade `json:"conditions"`
}

// View is everything the collection page renders
type View struct {
	Criteria   Criteria                `json:"criteria"`
	Groups     []models.Group          `json:"groups"`
	Tags       []string                `json:"tags"`
	Conditions []models.ConditionGrade `json:"conditions"`
	TotalItems int                     `json:"total_items"`
	ShownItems int                     `json:"shown_items"`
	TotalValue decimal.Decimal         `json:"total_value"` // current value of the whole collection
}

// BuildView runs the full pipeline over a snapshot
func BuildView(snap Snapshot, c Criteria) View {
	c = c.Normalized()
	ranks := BuildRanks(snap.Conditions)
	filtered := Filter(snap.Items, c)

	total := decimal.Zero
	for _, item := range snap.Items {
		total = total.Add(item.CurrentValue)
	}

	conditions := make([]models.ConditionGrade, len(snap.Conditions))
	copy(conditions, snap.Conditions)

	return View{
		Criteria:   c,
		Groups:     GroupAndSort(filtered, ranks),
		Tags:       TagVocabulary(snap.Items),
		Conditions: conditions,
		TotalItems: len(snap.Items),
		ShownItems: len(filtered),
		TotalValue: total,
	}
}
