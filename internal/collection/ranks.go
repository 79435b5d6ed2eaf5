// Package collection turns a flat item snapshot into the filtered, grouped
// and ordered view shown on the collection page. Every function here is pure:
// inputs are never mutated and each call allocates fresh output.
package collection

import "github.com/meur/shortbox/internal/models"

// SentinelRank is the rank of any grade reference missing from the snapshot.
// It sorts after every real rank.
const SentinelRank = 999

// Ranks maps condition grades to their zero-based position in the snapshot
type Ranks struct {
	ByID   map[int64]int
	ByCode map[string]int
}

// BuildRanks derives rank lookups from an ordered grade snapshot (best first)
func BuildRanks(grades []models.ConditionGrade) Ranks {
	r := Ranks{
		ByID:   make(map[int64]int, len(grades)),
		ByCode: make(map[string]int, len(grades)),
	}
	for pos, g := range grades {
		if _, ok := r.ByID[g.ID]; !ok {
			r.ByID[g.ID] = pos
		}
		// codes are not guaranteed unique; the best position wins
		if _, ok := r.ByCode[g.Code]; !ok {
			r.ByCode[g.Code] = pos
		}
	}
	return r
}

// OfID returns the rank for a grade identifier; nil or unknown gives SentinelRank
func (r Ranks) OfID(id *int64) int {
	if id == nil {
		return SentinelRank
	}
	if rank, ok := r.ByID[*id]; ok {
		return rank
	}
	return SentinelRank
}

// OfCode returns the rank for a grade code; unknown gives SentinelRank
func (r Ranks) OfCode(code string) int {
	if rank, ok := r.ByCode[code]; ok {
		return rank
	}
	return SentinelRank
}
