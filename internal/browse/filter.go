package browse

import (
	"strings"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// Filter narrows records by keyword, region and data quality. Stages are
// AND-combined and each is a no-op while its criterion is empty. The result
// is a stable subsequence of records; the input is never modified.
func Filter(records []casestudy.Summary, c Criteria) []casestudy.Summary {
	kw := newKeywordMatcher(c.Keyword)

	// nil means the stage is skipped, which differs from an empty allow-list.
	var countries map[string]struct{}
	if len(c.Regions) > 0 {
		countries = ResolveRegions(c.Regions)
	}

	var qualities map[casestudy.DataQuality]struct{}
	if len(c.Qualities) > 0 {
		qualities = make(map[casestudy.DataQuality]struct{}, len(c.Qualities))
		for _, q := range c.Qualities {
			qualities[q] = struct{}{}
		}
	}

	out := make([]casestudy.Summary, 0, len(records))
	for _, rec := range records {
		if kw != nil && !kw.match(rec) {
			continue
		}
		if countries != nil {
			if _, ok := countries[rec.Country]; !ok {
				continue
			}
		}
		if qualities != nil {
			if _, ok := qualities[rec.DataQuality]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// keywordMatcher matches a free-text keyword against policy name, country
// and tags, ignoring case. A record matches when the whole keyword is a
// substring of one field, or when every whitespace-separated term is a
// substring of some field.
type keywordMatcher struct {
	phrase string
	terms  []string
}

// newKeywordMatcher returns nil for a blank keyword.
func newKeywordMatcher(keyword string) *keywordMatcher {
	if strings.TrimSpace(keyword) == "" {
		return nil
	}
	phrase := strings.ToLower(keyword)
	return &keywordMatcher{
		phrase: phrase,
		terms:  strings.Fields(phrase),
	}
}

func (m *keywordMatcher) match(rec casestudy.Summary) bool {
	fields := searchableFields(rec)
	if anyContains(fields, m.phrase) {
		return true
	}
	if len(m.terms) < 2 {
		return anyContains(fields, strings.TrimSpace(m.phrase))
	}
	for _, term := range m.terms {
		if !anyContains(fields, term) {
			return false
		}
	}
	return true
}

func searchableFields(rec casestudy.Summary) []string {
	fields := make([]string, 0, 2+len(rec.Tags))
	fields = append(fields, strings.ToLower(rec.PolicyName), strings.ToLower(rec.Country))
	for _, tag := range rec.Tags {
		fields = append(fields, strings.ToLower(tag))
	}
	return fields
}

func anyContains(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(f, needle) {
			return true
		}
	}
	return false
}
