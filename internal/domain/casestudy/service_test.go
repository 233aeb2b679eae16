package casestudy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/rpggio/policyatlas/internal/repository"
	"github.com/rpggio/policyatlas/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCaseStudyService_GetDetail_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CaseStudyRepository{}
	repo.On("Get", ctx, "missing").Return((*casestudy.Detail)(nil), repository.ErrNotFound)

	svc := casestudy.NewService(repo, nil)
	_, err := svc.GetCaseStudyDetail(ctx, "missing")
	require.ErrorIs(t, err, casestudy.ErrCaseStudyNotFound)
}

func TestCaseStudyService_GetDetail_BlankID(t *testing.T) {
	svc := casestudy.NewService(&mocks.CaseStudyRepository{}, nil)
	_, err := svc.GetCaseStudyDetail(context.Background(), "  ")
	require.ErrorIs(t, err, casestudy.ErrInvalidInput)
}

func TestCaseStudyService_ListSummaries_NeverNil(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CaseStudyRepository{}
	repo.On("ListSummaries", ctx).Return(nil, nil)

	svc := casestudy.NewService(repo, nil)
	summaries, err := svc.ListCaseStudySummaries(ctx)
	require.NoError(t, err)
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestCaseStudyService_ListSummaries_WrapsError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")

	repo := &mocks.CaseStudyRepository{}
	repo.On("ListSummaries", ctx).Return(nil, boom)

	svc := casestudy.NewService(repo, nil)
	_, err := svc.ListCaseStudySummaries(ctx)
	require.ErrorIs(t, err, boom)
}

func TestCaseStudyService_Import_FillsPolicyDefaults(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CaseStudyRepository{}
	repo.On("Upsert", ctx, mock.MatchedBy(func(d *casestudy.Detail) bool {
		return d.Policy.Name == "EU AI Act" && d.Policy.EnactedDate == "2024-08-01"
	})).Return(nil)

	svc := casestudy.NewService(repo, nil)
	n, err := svc.Import(ctx, []casestudy.Detail{{
		Summary: casestudy.Summary{
			ID:          "eu-ai-act",
			Country:     "EU",
			PolicyName:  "EU AI Act",
			PolicyType:  casestudy.TypeComprehensive,
			DataQuality: casestudy.QualityHigh,
			EnactedDate: "2024-08-01",
		},
	}})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	repo.AssertExpectations(t)
}

func TestCaseStudyService_Import_StopsAtInvalid(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CaseStudyRepository{}
	repo.On("Upsert", ctx, mock.Anything).Return(nil).Once()

	svc := casestudy.NewService(repo, nil)
	n, err := svc.Import(ctx, []casestudy.Detail{
		{Summary: casestudy.Summary{ID: "a", Country: "UK", PolicyName: "A", PolicyType: casestudy.TypeVoluntary, DataQuality: casestudy.QualityMedium}},
		{Summary: casestudy.Summary{ID: "b", Country: "UK", PolicyName: "B", PolicyType: casestudy.TypeVoluntary, DataQuality: "excellent"}},
	})
	require.Equal(t, 1, n)
	require.ErrorIs(t, err, casestudy.ErrInvalidInput)
	require.ErrorIs(t, err, casestudy.ErrUnknownQuality)
}
