package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/rpggio/policyatlas/internal/fixtures"
	"github.com/rpggio/policyatlas/internal/repository"
	"github.com/stretchr/testify/require"
)

func testDetail(id, country string) *casestudy.Detail {
	return &casestudy.Detail{
		Summary: casestudy.Summary{
			ID:          id,
			Country:     country,
			PolicyName:  "Policy " + id,
			PolicyType:  casestudy.TypeComprehensive,
			DataQuality: casestudy.QualityHigh,
			EnactedDate: "2024-08-01",
			Tags:        []string{"risk-based"},
		},
		Policy: casestudy.Policy{
			Name:          "Policy " + id,
			EnactedDate:   "2024-08-01",
			Description:   "A test policy",
			KeyProvisions: []string{"tiered obligations"},
		},
		Outcomes: casestudy.Outcomes{
			SocialImpact:   casestudy.SocialImpact{TrustChangePct: 4.5},
			EconomicImpact: casestudy.EconomicImpact{ComplianceCostsUSD: 1200000},
		},
		Metadata: casestudy.Metadata{LegalSimilarity: 0.7},
	}
}

func TestCaseStudyRepository_UpsertAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCaseStudyRepository(db)
	ctx := context.Background()

	d := testDetail("cs1", "EU")
	require.NoError(t, repo.Upsert(ctx, d))

	got, err := repo.Get(ctx, "cs1")
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestCaseStudyRepository_UpsertReplaces(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCaseStudyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testDetail("cs1", "EU")))

	updated := testDetail("cs1", "UK")
	updated.DataQuality = casestudy.QualityMedium
	require.NoError(t, repo.Upsert(ctx, updated))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "UK", summaries[0].Country)
	require.Equal(t, casestudy.QualityMedium, summaries[0].DataQuality)
}

func TestCaseStudyRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCaseStudyRepository(db)

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCaseStudyRepository_ListSummariesInsertionOrder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCaseStudyRepository(db)
	ctx := context.Background()

	empty, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Upsert(ctx, testDetail(id, "EU")))
	}

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	require.Equal(t, "c", summaries[0].ID)
	require.Equal(t, "a", summaries[1].ID)
	require.Equal(t, "b", summaries[2].ID)
	require.Equal(t, []string{"risk-based"}, summaries[0].Tags)
}

func TestCaseStudyRepository_UpsertNilTags(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCaseStudyRepository(db)
	ctx := context.Background()

	d := testDetail("cs1", "EU")
	d.Tags = nil
	require.NoError(t, repo.Upsert(ctx, d))

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{}, summaries[0].Tags)
}

func TestCaseStudyRepository_UpsertRejectsUnknownQuality(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCaseStudyRepository(db)

	d := testDetail("cs1", "EU")
	d.DataQuality = "excellent"
	err := repo.Upsert(context.Background(), d)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestCaseStudyRepository_ServiceIntegration(t *testing.T) {
	db := NewTestDB(t)
	svc := casestudy.NewService(NewCaseStudyRepository(db), nil)
	ctx := context.Background()

	n, err := svc.Import(ctx, []casestudy.Detail{*testDetail("cs1", "EU")})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = svc.GetCaseStudyDetail(ctx, "missing")
	require.ErrorIs(t, err, casestudy.ErrCaseStudyNotFound)
}

func TestCaseStudyRepository_ReimportWithoutIDsReplaces(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	svc := casestudy.NewService(NewCaseStudyRepository(db), nil)

	const src = `
- country: Morocco
  policy_name: Digital Morocco 2030
  policy_type: national_strategy
  data_quality: projected
  enacted_date: "2024-09-25"
`
	for range 3 {
		details, err := fixtures.Decode(strings.NewReader(src))
		require.NoError(t, err)
		n, err := svc.Import(ctx, details)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
