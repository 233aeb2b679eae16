package browse

import (
	"slices"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// SortKey selects one of the total orderings applied after filtering.
type SortKey string

const (
	SortByDate    SortKey = "by_date"
	SortByCountry SortKey = "by_country"
	SortByName    SortKey = "by_name"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortByDate, SortByCountry, SortByName:
		return true
	}
	return false
}

// Criteria is the filter/sort/page selection driving a browsing view.
type Criteria struct {
	Keyword   string                  `json:"keyword"`
	Regions   []Region                `json:"regions"`
	Qualities []casestudy.DataQuality `json:"qualities"`
	Sort      SortKey                 `json:"sort"`
	Page      int                     `json:"page"`
}

// DefaultCriteria is the unrestricted, date-sorted first page.
func DefaultCriteria() Criteria {
	return Criteria{
		Regions:   []Region{},
		Qualities: []casestudy.DataQuality{},
		Sort:      SortByDate,
		Page:      1,
	}
}

// Clone returns a copy that shares no slices with c.
func (c Criteria) Clone() Criteria {
	out := c
	out.Regions = slices.Clone(c.Regions)
	out.Qualities = slices.Clone(c.Qualities)
	if out.Regions == nil {
		out.Regions = []Region{}
	}
	if out.Qualities == nil {
		out.Qualities = []casestudy.DataQuality{}
	}
	return out
}

// toggle removes v from list if present, otherwise appends it.
func toggle[T comparable](list []T, v T) []T {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), v)
}
