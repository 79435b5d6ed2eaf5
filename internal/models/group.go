package models

import "github.com/shopspring/decimal"

// Group is every item sharing one (series, issue) pair. Derived, never persisted.
type Group struct {
	Key            string          `json:"key"`
	Series         string          `json:"series"`
	Issue          string          `json:"issue"`
	Items          []Item          `json:"items"`
	ConditionCodes []string        `json:"condition_codes"` // distinct, in rank order
	Count          int             `json:"count"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

// Result is the outcome of a mutation submission
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Failure builds an unsuccessful Result
func Failure(message string) Result {
	return Result{Success: false, Message: message}
}

// Success builds a successful Result
func Success(message string) Result {
	return Result{Success: true, Message: message}
}
