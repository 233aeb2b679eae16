package casestudy

import "context"

// Repository provides persistence for case studies.
type Repository interface {
	ListSummaries(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, id string) (*Detail, error)
	Upsert(ctx context.Context, detail *Detail) error
	Count(ctx context.Context) (int, error)
}
