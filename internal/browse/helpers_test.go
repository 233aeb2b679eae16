package browse_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

func sampleSummaries() []casestudy.Summary {
	return []casestudy.Summary{
		{ID: "eu-ai-act", Country: "EU", PolicyName: "EU AI Act", PolicyType: casestudy.TypeComprehensive, DataQuality: casestudy.QualityHigh, EnactedDate: "2024-08-01", Tags: []string{"risk-based", "foundation models"}},
		{ID: "uk-pro-innovation", Country: "UK", PolicyName: "Pro-Innovation AI Regulation", PolicyType: casestudy.TypeVoluntary, DataQuality: casestudy.QualityMedium, EnactedDate: "2023-03-29", Tags: []string{"principles"}},
		{ID: "canada-aida", Country: "Canada", PolicyName: "Artificial Intelligence and Data Act", PolicyType: casestudy.TypeBill, DataQuality: casestudy.QualityMedium, EnactedDate: "2022-06-16", Tags: []string{"high-impact systems"}},
		{ID: "singapore-framework", Country: "Singapore", PolicyName: "Model AI Governance Framework", PolicyType: casestudy.TypeVoluntary, DataQuality: casestudy.QualityHigh, EnactedDate: "2020-01-21", Tags: []string{"sandbox"}},
		{ID: "korea-basic-act", Country: "South Korea", PolicyName: "AI Basic Act", PolicyType: casestudy.TypeComprehensive, DataQuality: casestudy.QualityProjected, EnactedDate: "2026-01-22", Tags: []string{"industrial policy"}},
		{ID: "rwanda-policy", Country: "Rwanda", PolicyName: "National AI Policy", PolicyType: casestudy.TypeNationalStrategy, DataQuality: casestudy.QualityProjected, EnactedDate: "2023-04-20", Tags: []string{"skills"}},
		{ID: "tunisia-strategy", Country: "Tunisia", PolicyName: "National AI Strategy", PolicyType: casestudy.TypeNationalStrategy, DataQuality: casestudy.QualityProjected, EnactedDate: "2021", Tags: []string{"francophone"}},
		{ID: "brazil-bill", Country: "Brazil", PolicyName: "AI Bill 2338/2023", PolicyType: casestudy.TypeBill, DataQuality: casestudy.QualityMedium, EnactedDate: "2023-05-03", Tags: []string{"rights"}},
	}
}

// generatedSummaries returns n EU records with descending distinct dates.
func generatedSummaries(n int) []casestudy.Summary {
	out := make([]casestudy.Summary, n)
	for i := range out {
		out[i] = casestudy.Summary{
			ID:          fmt.Sprintf("cs-%02d", i),
			Country:     "EU",
			PolicyName:  fmt.Sprintf("Policy %02d", i),
			PolicyType:  casestudy.TypeSectoral,
			DataQuality: casestudy.QualityMedium,
			EnactedDate: fmt.Sprintf("2020-01-%02d", 28-i),
		}
	}
	return out
}

func ids(records []casestudy.Summary) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// gatedSource serves details, optionally holding a response until its gate
// is released. It ignores context cancellation so late responses really do
// arrive late.
type gatedSource struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	details map[string]*casestudy.Detail
	errs    map[string]error
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		gates:   map[string]chan struct{}{},
		details: map[string]*casestudy.Detail{},
		errs:    map[string]error{},
	}
}

func (g *gatedSource) add(id string) *gatedSource {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.details[id] = &casestudy.Detail{
		Summary: casestudy.Summary{ID: id, Country: "EU", PolicyName: "Policy " + id},
	}
	return g
}

func (g *gatedSource) fail(id string, err error) *gatedSource {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[id] = err
	return g
}

func (g *gatedSource) hold(id string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	gate := make(chan struct{})
	g.gates[id] = gate
	return gate
}

func (g *gatedSource) GetCaseStudyDetail(_ context.Context, id string) (*casestudy.Detail, error) {
	g.mu.Lock()
	gate := g.gates[id]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs[id]; err != nil {
		return nil, err
	}
	if d, ok := g.details[id]; ok {
		return d, nil
	}
	return nil, casestudy.ErrCaseStudyNotFound
}
