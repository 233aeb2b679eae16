package browse_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadOnce(t *testing.T) {
	ctx := context.Background()
	src := &mocks.SummarySource{}
	src.On("ListCaseStudySummaries", ctx).Return(sampleSummaries(), nil).Once()

	store := browse.NewStore()
	require.False(t, store.Loaded())

	store.Load(ctx, src)
	store.Load(ctx, src)

	require.True(t, store.Loaded())
	require.NoError(t, store.LoadErr())
	require.Len(t, store.Records(), 8)
	src.AssertExpectations(t)
}

func TestStore_LoadFailureYieldsEmptySet(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	src := &mocks.SummarySource{}
	src.On("ListCaseStudySummaries", ctx).Return(nil, boom)

	store := browse.NewStore()
	store.Load(ctx, src)

	require.True(t, store.Loaded())
	require.Empty(t, store.Records())
	require.ErrorIs(t, store.LoadErr(), boom)

	view := browse.NewSession(store, newGatedSource()).View()
	require.True(t, view.Empty)
	require.False(t, view.ShowPager)
	require.Equal(t, 1, view.TotalPages)
}

func TestStore_Stats(t *testing.T) {
	stats := browse.NewStoreFrom(sampleSummaries()).Stats()
	require.Equal(t, browse.Stats{
		TotalStudies:      8,
		Regions:           5,
		ComprehensiveActs: 2,
		HighQualityData:   2,
	}, stats)
}
