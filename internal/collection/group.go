package collection

import (
	"cmp"
	"slices"

	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// KeySeparator joins series and issue into a group key.
// It is the ASCII unit separator, which never appears in typed titles.
const KeySeparator = "\x1f"

// GroupKey returns the exact (case and whitespace sensitive) grouping key
func GroupKey(series, issue string) string {
	return series + KeySeparator + issue
}

// GroupAndSort partitions items by (series, issue) and orders groups,
// the items inside each group, and each group's condition codes.
func GroupAndSort(items []models.Item, ranks Ranks) []models.Group {
	index := make(map[string]int)
	groups := []models.Group{}

	for _, item := range items {
		key := GroupKey(item.Series, item.Issue)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, models.Group{
				Key:            key,
				Series:         item.Series,
				Issue:          item.Issue,
				ConditionCodes: []string{},
				TotalValue:     decimal.Zero,
			})
		}

		g := &groups[pos]
		g.Items = append(g.Items, item)
		g.Count++
		g.TotalValue = g.TotalValue.Add(item.CurrentValue)
		if code := item.ConditionCode(); code != "" && !slices.Contains(g.ConditionCodes, code) {
			g.ConditionCodes = append(g.ConditionCodes, code)
		}
	}

	sortGroups(groups)
	for i := range groups {
		sortMembers(groups[i].Items, ranks)
		slices.SortStableFunc(groups[i].ConditionCodes, func(a, b string) int {
			return cmp.Compare(ranks.OfCode(a), ranks.OfCode(b))
		})
	}
	return groups
}

// sortGroups orders by series (locale collation), then issue (numeric aware,
// case insensitive), then raw key so that the order is total.
func sortGroups(groups []models.Group) {
	// Collators keep internal buffers and must not be shared across goroutines.
	seriesColl := collate.New(language.English)
	issueColl := collate.New(language.English, collate.Numeric, collate.IgnoreCase)

	slices.SortStableFunc(groups, func(a, b models.Group) int {
		if c := seriesColl.CompareString(a.Series, b.Series); c != 0 {
			return c
		}
		if c := issueColl.CompareString(a.Issue, b.Issue); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
}

// sortMembers orders by condition rank ascending, then current value descending
func sortMembers(items []models.Item, ranks Ranks) {
	slices.SortStableFunc(items, func(a, b models.Item) int {
		if c := cmp.Compare(ranks.OfID(a.ConditionID), ranks.OfID(b.ConditionID)); c != 0 {
			return c
		}
		return b.CurrentValue.Cmp(a.CurrentValue)
	})
}
