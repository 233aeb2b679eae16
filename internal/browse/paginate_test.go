package browse_test

import (
	"testing"

	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{n: 0, size: 6, want: 1},
		{n: 1, size: 6, want: 1},
		{n: 6, size: 6, want: 1},
		{n: 7, size: 6, want: 2},
		{n: 14, size: 6, want: 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, browse.TotalPages(tt.n, tt.size), "n=%d", tt.n)
	}
}

func TestClampPage(t *testing.T) {
	require.Equal(t, 1, browse.ClampPage(0, 3))
	require.Equal(t, 1, browse.ClampPage(-4, 3))
	require.Equal(t, 2, browse.ClampPage(2, 3))
	require.Equal(t, 3, browse.ClampPage(9, 3))
	require.Equal(t, 1, browse.ClampPage(5, 0))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

	page, total := browse.Paginate(items, 3, 6)
	require.Equal(t, 3, total)
	require.Equal(t, []int{13, 14}, page)

	page, _ = browse.Paginate(items, 99, 6)
	require.Equal(t, []int{13, 14}, page)

	page, total = browse.Paginate([]int{}, 1, 6)
	require.Equal(t, 1, total)
	require.Empty(t, page)
}

func TestPaginate_PagesConcatenateToInput(t *testing.T) {
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}
	_, total := browse.Paginate(items, 1, browse.PageSize)

	var joined []int
	for p := 1; p <= total; p++ {
		page, _ := browse.Paginate(items, p, browse.PageSize)
		require.LessOrEqual(t, len(page), browse.PageSize)
		joined = append(joined, page...)
	}
	require.Equal(t, items, joined)
}
