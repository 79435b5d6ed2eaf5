package collection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meur/shortbox/internal/models"
	"github.com/stretchr/testify/assert"
)

func filterFixture() []models.Item {
	return []models.Item{
		item(1, "Batman", "9", 1, "40", "Key, signed"),
		item(2, "The Amazing Spider-Man", "300", 2, "900", "key"),
		item(3, "Saga", "1A", 3, "12", ""),
		item(4, "Batman", "10", 0, "8", " ,  , "),
		item(5, "X-Men", "94", 2, "150", "first app,KEY"),
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{name: "all pass", criteria: Criteria{Query: "", Condition: ShowAll, Tag: ShowAll}, want: []int64{1, 2, 3, 4, 5}},
		{name: "empty selectors mean all", criteria: Criteria{}, want: []int64{1, 2, 3, 4, 5}},
		{name: "condition all means all", criteria: Criteria{Condition: "all"}, want: []int64{1, 2, 3, 4, 5}},
		{name: "series ignores case", criteria: Criteria{Query: "bAtMaN"}, want: []int64{1, 4}},
		{name: "series substring", criteria: Criteria{Query: "spider"}, want: []int64{2}},
		{name: "issue substring", criteria: Criteria{Query: "30"}, want: []int64{2}},
		{name: "issue match is case sensitive", criteria: Criteria{Query: "1a"}, want: []int64{}},
		{name: "issue match as typed", criteria: Criteria{Query: "1A"}, want: []int64{3}},
		{name: "condition by id", criteria: Criteria{Condition: "2"}, want: []int64{2, 5}},
		{name: "condition never matches missing grade", criteria: Criteria{Condition: "0"}, want: []int64{}},
		{name: "tag ignores case", criteria: Criteria{Tag: "KEY"}, want: []int64{1, 2, 5}},
		{name: "tag trimmed", criteria: Criteria{Tag: "first app"}, want: []int64{5}},
		{name: "empty tag string never matches a tag", criteria: Criteria{Tag: "Key"}, want: []int64{1, 2, 5}},
		{name: "whitespace-only segments dropped", criteria: Criteria{Tag: " "}, want: []int64{}},
		{name: "all three combine", criteria: Criteria{Query: "man", Condition: "1", Tag: "signed"}, want: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(filterFixture(), tt.criteria))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%+v) mismatch (-want +got):\n%s", tt.criteria, diff)
			}
		})
	}
}

func TestFilterEmptyTagExcludedUnderConcreteTag(t *testing.T) {
	items := []models.Item{item(1, "Saga", "1", 1, "5", "")}
	items[0].Tags = ptr("")

	assert.Empty(t, Filter(items, Criteria{Tag: "Key"}))
	assert.Len(t, Filter(items, Criteria{Tag: ShowAll}), 1)
}

func TestFilterTagNamedAllIsConcrete(t *testing.T) {
	items := []models.Item{
		item(1, "Saga", "1", 1, "5", "all"),
		item(2, "Saga", "2", 1, "5", "key"),
	}

	assert.Equal(t, []int64{1}, ids(Filter(items, Criteria{Tag: "all"})))
	assert.Equal(t, []int64{1}, ids(Filter(items, Criteria{Tag: "ALL"})))
	assert.Equal(t, []int64{1, 2}, ids(Filter(items, Criteria{Tag: ShowAll})))
}

func TestNormalizedMapsConditionAll(t *testing.T) {
	c := Criteria{Condition: "all", Tag: "all"}.Normalized()
	assert.Equal(t, ShowAll, c.Condition)
	assert.Equal(t, "all", c.Tag)
}

func TestFilterIsOrderPreservingSubset(t *testing.T) {
	items := filterFixture()
	criteria := Criteria{Tag: "key"}

	once := Filter(items, criteria)
	twice := Filter(once, criteria)

	assert.Equal(t, ids(once), ids(twice), "filter must be idempotent")

	pos := map[int64]int{}
	for i, it := range items {
		pos[it.ID] = i
	}
	last := -1
	for _, it := range once {
		p, ok := pos[it.ID]
		assert.True(t, ok, "item %d not in input", it.ID)
		assert.Greater(t, p, last, "order not preserved")
		last = p
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := filterFixture()
	before := ids(items)

	_ = Filter(items, Criteria{Query: "batman"})

	assert.Equal(t, before, ids(items))
}
