package browse

// PageSize is the number of case studies shown per page.
const PageSize = 6

// TotalPages returns ceil(n/pageSize), never less than 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the half-open slice [(page-1)*pageSize, page*pageSize)
// of items, clamped to what exists, plus the total page count. page is
// clamped before slicing. The returned slice aliases items.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	total := TotalPages(len(items), pageSize)
	page = ClampPage(page, total)

	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0:0], total
	}
	end := min(start+pageSize, len(items))
	return items[start:end:end], total
}
