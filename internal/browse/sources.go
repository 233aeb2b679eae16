package browse

import (
	"context"
	"time"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// SummarySource lists every case study summary.
type SummarySource interface {
	ListCaseStudySummaries(ctx context.Context) ([]casestudy.Summary, error)
}

// DetailSource fetches a single fully hydrated case study.
type DetailSource interface {
	GetCaseStudyDetail(ctx context.Context, id string) (*casestudy.Detail, error)
}

// Observer receives engine telemetry. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveFetch(op string, d time.Duration, err error)
	StaleDetailDiscarded()
}

const (
	opListSummaries = "list_summaries"
	opGetDetail     = "get_detail"
)

type nopObserver struct{}

func (nopObserver) ObserveFetch(string, time.Duration, error) {}
func (nopObserver) StaleDetailDiscarded()                     {}
