package mcp

import (
	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

type SearchParams struct {
	Keyword string `json:"keyword" jsonschema:"free text matched against policy name, country and tags; empty clears the filter"`
}

type ToggleRegionParams struct {
	Region string `json:"region" jsonschema:"region label, see list_filters"`
}

type ToggleQualityParams struct {
	Quality string `json:"quality" jsonschema:"data quality tier: high, medium or projected"`
}

type SetSortParams struct {
	Sort string `json:"sort" jsonschema:"by_date, by_country or by_name; anything else sorts by date"`
}

type SetPageParams struct {
	Page int `json:"page" jsonschema:"1-based page number; out of range values are clamped"`
}

type ApplyFiltersParams struct {
	Keyword   string   `json:"keyword,omitempty" jsonschema:"free text filter"`
	Regions   []string `json:"regions,omitempty" jsonschema:"region labels to allow"`
	Qualities []string `json:"qualities,omitempty" jsonschema:"data quality tiers to allow"`
	Sort      string   `json:"sort,omitempty" jsonschema:"by_date, by_country or by_name"`
}

type SelectParams struct {
	ID string `json:"id" jsonschema:"case study id from a browse result"`
}

type NoParams struct{}

// CaseStudyCard is a list item with its display labels resolved.
type CaseStudyCard struct {
	casestudy.Summary
	QualityLabel string `json:"quality_label"`
	TypeLabel    string `json:"type_label"`
}

// ViewResponse is one rendered page of the browsing view.
type ViewResponse struct {
	Items        []CaseStudyCard `json:"items"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
	TotalMatches int             `json:"total_matches"`
	Empty        bool            `json:"empty"`
	ShowPager    bool            `json:"show_pager"`
	Criteria     browse.Criteria `json:"criteria"`
}

// SelectionResponse reports how a select_case_study call resolved and the
// detail state it left behind.
type SelectionResponse struct {
	Applied   bool               `json:"applied"`
	Discarded bool               `json:"discarded"`
	Error     *APIError          `json:"error,omitempty"`
	State     browse.DetailState `json:"state"`
}

type RegionInfo struct {
	Name      browse.Region `json:"name"`
	Countries []string      `json:"countries"`
}

type QualityInfo struct {
	Value casestudy.DataQuality `json:"value"`
	Label string                `json:"label"`
}

// FiltersResponse lists every accepted filter and sort value.
type FiltersResponse struct {
	Regions   []RegionInfo     `json:"regions"`
	Qualities []QualityInfo    `json:"qualities"`
	SortKeys  []browse.SortKey `json:"sort_keys"`
	PageSize  int              `json:"page_size"`
}

// StatsResponse wraps aggregate counts with the list-load status.
type StatsResponse struct {
	browse.Stats
	LoadError string `json:"load_error,omitempty"`
}

func newViewResponse(v browse.View) ViewResponse {
	items := make([]CaseStudyCard, 0, len(v.Items))
	for _, s := range v.Items {
		items = append(items, CaseStudyCard{
			Summary:      s,
			QualityLabel: s.DataQuality.Label(),
			TypeLabel:    s.PolicyType.DisplayName(),
		})
	}
	return ViewResponse{
		Items:        items,
		Page:         v.Page,
		TotalPages:   v.TotalPages,
		TotalMatches: v.TotalMatches,
		Empty:        v.Empty,
		ShowPager:    v.ShowPager,
		Criteria:     v.Criteria,
	}
}

func newFiltersResponse() FiltersResponse {
	resp := FiltersResponse{
		SortKeys: []browse.SortKey{browse.SortByDate, browse.SortByCountry, browse.SortByName},
		PageSize: browse.PageSize,
	}
	for _, r := range browse.Regions() {
		resp.Regions = append(resp.Regions, RegionInfo{Name: r, Countries: r.Countries()})
	}
	for _, q := range casestudy.Qualities() {
		resp.Qualities = append(resp.Qualities, QualityInfo{Value: q, Label: q.Label()})
	}
	return resp
}
