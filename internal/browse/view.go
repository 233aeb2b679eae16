package browse

import "github.com/rpggio/policyatlas/internal/domain/casestudy"

// View is the render-ready result of applying Criteria to the record set.
type View struct {
	Items        []casestudy.Summary `json:"items"`
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"total_pages"`
	TotalMatches int                 `json:"total_matches"`
	// Empty is set when no record matches; ShowPager is then always false.
	Empty     bool     `json:"empty"`
	ShowPager bool     `json:"show_pager"`
	Criteria  Criteria `json:"criteria"`
}

// Recompute runs Filter, Sort and Paginate in that order. It is pure: the
// same records and criteria always produce the same view.
func Recompute(records []casestudy.Summary, c Criteria) View {
	filtered := Filter(records, c)
	sorted := Sort(filtered, c.Sort)
	items, total := Paginate(sorted, c.Page, PageSize)

	c = c.Clone()
	c.Page = ClampPage(c.Page, total)

	return View{
		Items:        items,
		Page:         c.Page,
		TotalPages:   total,
		TotalMatches: len(sorted),
		Empty:        len(sorted) == 0,
		ShowPager:    total > 1,
		Criteria:     c,
	}
}

// Stats are aggregate counts over the full record set, independent of any
// filter.
type Stats struct {
	TotalStudies      int `json:"total_studies"`
	Regions           int `json:"regions"`
	ComprehensiveActs int `json:"comprehensive_acts"`
	HighQualityData   int `json:"high_quality_data"`
}

// ComputeStats derives Stats from records.
func ComputeStats(records []casestudy.Summary) Stats {
	stats := Stats{
		TotalStudies: len(records),
		Regions:      len(regionOrder),
	}
	for _, rec := range records {
		if rec.PolicyType == casestudy.TypeComprehensive {
			stats.ComprehensiveActs++
		}
		if rec.DataQuality == casestudy.QualityHigh {
			stats.HighQualityData++
		}
	}
	return stats
}
