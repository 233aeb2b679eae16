package browse

import (
	"slices"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a copy of records ordered by key. The sort is stable, so
// records with equal keys keep their relative input order. Unknown keys
// fall back to SortByDate.
func Sort(records []casestudy.Summary, key SortKey) []casestudy.Summary {
	out := slices.Clone(records)
	switch key {
	case SortByCountry:
		col := newCollator()
		slices.SortStableFunc(out, func(a, b casestudy.Summary) int {
			return col.CompareString(a.Country, b.Country)
		})
	case SortByName:
		col := newCollator()
		slices.SortStableFunc(out, func(a, b casestudy.Summary) int {
			return col.CompareString(a.PolicyName, b.PolicyName)
		})
	default:
		sortByDateDesc(out)
	}
	return out
}

// sortByDateDesc puts the most recent enactment first. Records without a
// parseable date sort as the earliest.
func sortByDateDesc(records []casestudy.Summary) {
	type keyed struct {
		rec casestudy.Summary
		ts  int64
		ok  bool
	}
	keys := make([]keyed, len(records))
	for i, rec := range records {
		t, ok := rec.Enacted()
		keys[i] = keyed{rec: rec, ok: ok}
		if ok {
			keys[i].ts = t.Unix()
		}
	}
	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		case !a.ok && !b.ok:
			return 0
		case a.ts > b.ts:
			return -1
		case a.ts < b.ts:
			return 1
		}
		return 0
	})
	for i := range keys {
		records[i] = keys[i].rec
	}
}

// A Collator is not safe for concurrent use; build one per sort.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
