package collection

import (
	"strconv"
	"strings"

	"github.com/meur/shortbox/internal/models"
)

// ShowAll is the selector value that disables the condition or tag filter.
// It is empty so it can never collide with a tag label, which is always non-empty.
const ShowAll = ""

// showAllCondition is the older condition selector value; grade ids are numeric.
const showAllCondition = "all"

// Criteria are the three filter inputs of the collection page
type Criteria struct {
	Query     string `json:"q"`
	Condition string `json:"condition"` // grade identifier or ShowAll
	Tag       string `json:"tag"`       // tag label or ShowAll
}

// Normalized returns a copy with the condition selector's "all" mapped to ShowAll.
// A tag selector of "all" is a real tag and is kept.
func (c Criteria) Normalized() Criteria {
	if c.Condition == showAllCondition {
		c.Condition = ShowAll
	}
	return c
}

// Filter returns the items matching all three criteria, in input order
func Filter(items []models.Item, c Criteria) []models.Item {
	c = c.Normalized()
	lowerQuery := strings.ToLower(c.Query)
	lowerTag := strings.ToLower(c.Tag)

	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if !matchesText(item, c.Query, lowerQuery) {
			continue
		}
		if !matchesCondition(item, c.Condition) {
			continue
		}
		if !matchesTag(item, c.Tag, lowerTag) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// series match ignores case; issue match is as typed
func matchesText(item models.Item, query, lowerQuery string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Series), lowerQuery) ||
		strings.Contains(item.Issue, query)
}

func matchesCondition(item models.Item, selected string) bool {
	if selected == ShowAll {
		return true
	}
	if item.ConditionID == nil {
		return false
	}
	return strconv.FormatInt(*item.ConditionID, 10) == selected
}

func matchesTag(item models.Item, selected, lowerSelected string) bool {
	if selected == ShowAll {
		return true
	}
	for _, tag := range ParseTags(item.TagString()) {
		if strings.ToLower(tag) == lowerSelected {
			return true
		}
	}
	return false
}
