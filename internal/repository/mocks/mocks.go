package mocks

import (
	"context"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/stretchr/testify/mock"
)

// CaseStudyRepository is a mock for casestudy.Repository.
type CaseStudyRepository struct {
	mock.Mock
}

func (m *CaseStudyRepository) ListSummaries(ctx context.Context) ([]casestudy.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]casestudy.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CaseStudyRepository) Get(ctx context.Context, id string) (*casestudy.Detail, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*casestudy.Detail); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CaseStudyRepository) Upsert(ctx context.Context, detail *casestudy.Detail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *CaseStudyRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// SummarySource is a mock for browse.SummarySource.
type SummarySource struct {
	mock.Mock
}

func (m *SummarySource) ListCaseStudySummaries(ctx context.Context) ([]casestudy.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]casestudy.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DetailSource is a mock for browse.DetailSource.
type DetailSource struct {
	mock.Mock
}

func (m *DetailSource) GetCaseStudyDetail(ctx context.Context, id string) (*casestudy.Detail, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*casestudy.Detail); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
