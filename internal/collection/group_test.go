package collection

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meur/shortbox/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAndSortScenario(t *testing.T) {
	grades := []models.ConditionGrade{{ID: 1, Code: "NM"}, {ID: 2, Code: "VF"}}
	items := []models.Item{
		{ID: 10, Series: "X", Issue: "1", ConditionID: ptr(int64(2)), Condition: &grades[1], CurrentValue: mustDecimal("5")},
		{ID: 11, Series: "X", Issue: "1", ConditionID: ptr(int64(1)), Condition: &grades[0], CurrentValue: mustDecimal("1")},
	}

	view := BuildView(Snapshot{Items: items, Conditions: grades}, Criteria{Query: "", Condition: ShowAll, Tag: ShowAll})

	require.Len(t, view.Groups, 1)
	g := view.Groups[0]
	assert.Equal(t, "X"+KeySeparator+"1", g.Key)
	assert.Equal(t, []int64{11, 10}, ids(g.Items))
	assert.Equal(t, []string{"NM", "VF"}, g.ConditionCodes)
	assert.Equal(t, 2, g.Count)
	assert.True(t, g.TotalValue.Equal(mustDecimal("6")))
}

func TestGroupOrderNumericAwareIssue(t *testing.T) {
	items := []models.Item{
		item(1, "Batman", "10", 1, "1", ""),
		item(2, "Batman", "9", 1, "1", ""),
		item(3, "Batman", "2", 1, "1", ""),
		item(4, "Batman", "100", 1, "1", ""),
	}

	groups := GroupAndSort(items, BuildRanks(testGrades))

	want := []string{"Batman#2", "Batman#9", "Batman#10", "Batman#100"}
	if diff := cmp.Diff(want, groupKeys(groups)); diff != "" {
		t.Errorf("group order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupOrderSeriesThenIssue(t *testing.T) {
	items := []models.Item{
		item(1, "Saga", "1", 1, "1", ""),
		item(2, "action comics", "1", 1, "1", ""),
		item(3, "Batman", "1a", 1, "1", ""),
		item(4, "Batman", "1B", 1, "1", ""),
		item(5, "Zot!", "3", 1, "1", ""),
	}

	groups := GroupAndSort(items, BuildRanks(testGrades))

	want := []string{"action comics#1", "Batman#1a", "Batman#1B", "Saga#1", "Zot!#3"}
	if diff := cmp.Diff(want, groupKeys(groups)); diff != "" {
		t.Errorf("group order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupKeyIsExact(t *testing.T) {
	items := []models.Item{
		item(1, "Batman", "1", 1, "1", ""),
		item(2, "batman", "1", 1, "1", ""),
		item(3, "Batman ", "1", 1, "1", ""),
		item(4, "Batman", "1", 2, "1", ""),
	}

	groups := GroupAndSort(items, BuildRanks(testGrades))

	assert.Len(t, groups, 3)
	for _, g := range groups {
		for _, it := range g.Items {
			assert.Equal(t, g.Series, it.Series)
			assert.Equal(t, g.Issue, it.Issue)
		}
	}
}

func TestGroupingIsPartition(t *testing.T) {
	items := []models.Item{
		item(1, "A", "1", 1, "1", ""),
		item(2, "B", "2", 2, "1", ""),
		item(3, "A", "1", 3, "1", ""),
		item(4, "C", "7", 0, "1", ""),
		item(5, "B", "2", 1, "1", ""),
	}

	groups := GroupAndSort(items, BuildRanks(testGrades))

	var seen []int64
	for _, g := range groups {
		seen = append(seen, ids(g.Items)...)
		assert.Equal(t, len(g.Items), g.Count)
	}
	slices.Sort(seen)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seen)
}

func TestMemberOrderRankBeatsValue(t *testing.T) {
	items := []models.Item{
		item(1, "A", "1", 3, "500", ""),
		item(2, "A", "1", 1, "1", ""),
	}

	groups := GroupAndSort(items, BuildRanks(testGrades))

	require.Len(t, groups, 1)
	assert.Equal(t, []int64{2, 1}, ids(groups[0].Items))
}

func TestMemberOrderValueDescendingWithinRank(t *testing.T) {
	items := []models.Item{
		item(1, "A", "1", 2, "10.00", ""),
		item(2, "A", "1", 2, "50.00", ""),
		item(3, "A", "1", 2, "0", ""),
	}
	items[2].CurrentValue = mustDecimal("0")

	groups := GroupAndSort(items, BuildRanks(testGrades))

	require.Len(t, groups, 1)
	assert.Equal(t, []int64{2, 1, 3}, ids(groups[0].Items))
}

func TestMemberWithoutConditionSortsLast(t *testing.T) {
	orphan := item(1, "A", "1", 0, "1000", "")
	orphan.ConditionID = ptr(int64(77))
	items := []models.Item{
		item(2, "A", "1", 0, "1", ""),
		orphan,
		item(3, "A", "1", 3, "1", ""),
	}

	groups := GroupAndSort(items, BuildRanks(testGrades))

	require.Len(t, groups, 1)
	assert.Equal(t, []int64{3, 1, 2}, ids(groups[0].Items))
	assert.Equal(t, []string{"FN"}, groups[0].ConditionCodes)
}

func TestConditionCodesInRankOrder(t *testing.T) {
	items := []models.Item{
		item(1, "A", "1", 3, "1", ""),
		item(2, "A", "1", 1, "1", ""),
		item(3, "A", "1", 3, "1", ""),
		item(4, "A", "1", 2, "1", ""),
	}
	items[0].Condition = &models.ConditionGrade{ID: 3, Code: "FN"}
	items = append(items, models.Item{ID: 5, Series: "A", Issue: "1", Condition: &models.ConditionGrade{Code: "??"}})

	groups := GroupAndSort(items, BuildRanks(testGrades))

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"NM", "VF", "FN", "??"}, groups[0].ConditionCodes)
}

func TestGroupAndSortIsDeterministic(t *testing.T) {
	items := []models.Item{
		item(1, "Batman", "10", 2, "3", ""),
		item(2, "Saga", "1", 1, "5", ""),
		item(3, "Batman", "9", 3, "5", ""),
		item(4, "Batman", "10", 2, "3", ""),
		item(5, "Batman", "10", 1, "1", ""),
	}
	ranks := BuildRanks(testGrades)

	first := GroupAndSort(items, ranks)
	for range 5 {
		again := GroupAndSort(items, ranks)
		assert.Equal(t, groupKeys(first), groupKeys(again))
		for i := range first {
			assert.Equal(t, ids(first[i].Items), ids(again[i].Items))
			assert.Equal(t, first[i].ConditionCodes, again[i].ConditionCodes)
		}
	}
	assert.Equal(t, []int64{5, 1, 4}, ids(first[1].Items))
}

func TestGroupAndSortDoesNotMutateInput(t *testing.T) {
	items := []models.Item{
		item(1, "B", "1", 3, "1", ""),
		item(2, "A", "1", 1, "1", ""),
		item(3, "B", "1", 1, "1", ""),
	}

	_ = GroupAndSort(items, BuildRanks(testGrades))

	assert.Equal(t, []int64{1, 2, 3}, ids(items))
}

func TestGroupAndSortEmpty(t *testing.T) {
	groups := GroupAndSort(nil, BuildRanks(nil))
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
