package casestudy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/policyatlas/internal/repository"
)

// Service serves case studies out of a repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new case study service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListCaseStudySummaries returns every stored summary.
func (s *Service) ListCaseStudySummaries(ctx context.Context) ([]Summary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing case studies: %w", err)
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	return summaries, nil
}

// GetCaseStudyDetail returns the full record for id.
func (s *Service) GetCaseStudyDetail(ctx context.Context, id string) (*Detail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	detail, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCaseStudyNotFound
		}
		return nil, fmt.Errorf("getting case study: %w", err)
	}
	return detail, nil
}

// Import validates and upserts a batch of case studies. It stops at the
// first invalid record and reports how many were written before it.
func (s *Service) Import(ctx context.Context, details []Detail) (int, error) {
	written := 0
	for i := range details {
		d := &details[i]
		if d.Policy.Name == "" {
			d.Policy.Name = d.PolicyName
		}
		if d.Policy.EnactedDate == "" {
			d.Policy.EnactedDate = d.EnactedDate
		}
		if err := ValidateDetail(d); err != nil {
			return written, fmt.Errorf("record %d: %w", i, err)
		}
		if err := s.repo.Upsert(ctx, d); err != nil {
			return written, fmt.Errorf("storing %s: %w", d.ID, err)
		}
		written++
	}
	if s.logger != nil {
		s.logger.Info("imported case studies", "count", written)
	}
	return written, nil
}

// Count returns the number of stored case studies.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
