package models

// ConditionGrade represents a standardized grading bucket.
// The order of a grade snapshot (ID ascending) is its rank: position 0 is the best condition.
type ConditionGrade struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DefaultConditionScale returns the standard comic grading scale, best first
func DefaultConditionScale() []ConditionGrade {
	return []ConditionGrade{
		{ID: 1, Code: "MT", Description: "Mint"},
		{ID: 2, Code: "NM", Description: "Near Mint"},
		{ID: 3, Code: "VF/NM", Description: "Very Fine / Near Mint"},
		{ID: 4, Code: "VF", Description: "Very Fine"},
		{ID: 5, Code: "FN", Description: "Fine"},
		{ID: 6, Code: "VG", Description: "Very Good"},
		{ID: 7, Code: "GD", Description: "Good"},
		{ID: 8, Code: "FR", Description: "Fair"},
		{ID: 9, Code: "PR", Description: "Poor"},
	}
}
