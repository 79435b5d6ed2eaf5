package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a single physical copy of a collectible issue
type Item struct {
	ID            int64           `json:"id"`
	UserID        string          `json:"user_id"`
	Series        string          `json:"series"`
	Issue         string          `json:"issue"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Notes         string          `json:"notes"`
	Tags          *string         `json:"tags,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ConditionID   *int64          `json:"condition_id,omitempty"` // nil = ungraded or orphaned
	Condition     *ConditionGrade `json:"condition,omitempty"`    // embedded by the store
}

// ConditionCode returns the code of the embedded grade, or "" when there is none
func (i Item) ConditionCode() string {
	if i.Condition == nil {
		return ""
	}
	return i.Condition.Code
}

// TagString returns the raw tag string, treating nil as empty
func (i Item) TagString() string {
	if i.Tags == nil {
		return ""
	}
	return *i.Tags
}

// ItemForm is a form-like submission for add and edit.
// Every field arrives as a string; numeric fields are coerced, never rejected.
type ItemForm struct {
	Series        string `json:"series" validate:"required,max=200"`
	Issue         string `json:"issue" validate:"required,max=32"`
	ConditionID   string `json:"condition_id"`
	PurchasePrice string `json:"purchase_price"`
	CurrentValue  string `json:"current_value"`
	Notes         string `json:"notes" validate:"max=4000"`
	Tags          string `json:"tags" validate:"max=500"`
}

// ItemCreate is the typed payload for creating an item
type ItemCreate struct {
	Series        string
	Issue         string
	ConditionID   int64
	PurchasePrice decimal.Decimal
	CurrentValue  decimal.Decimal
	Notes         string
	Tags          *string
}

// ItemUpdate is the typed payload for updating an item.
// The purchase price is fixed at creation and has no field here.
type ItemUpdate struct {
	Series       string
	Issue        string
	ConditionID  int64
	CurrentValue decimal.Decimal
	Notes        string
	Tags         *string
}

// ItemList is a collection of items
type ItemList struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"total_count"`
}
