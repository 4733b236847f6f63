package state

// PageSize is the number of rows shown per page in every paged view.
const PageSize = 50

// PageCount returns the number of pages needed for n rows. An empty set still
// has one (empty) page.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// MaxPage returns the last valid zero-based page index for n rows.
func MaxPage(n int) int {
	return PageCount(n) - 1
}

// ClampPage forces page into [0, MaxPage(n)].
func ClampPage(page, n int) int {
	if page < 0 {
		return 0
	}
	if last := MaxPage(n); page > last {
		return last
	}
	return page
}

// PageBounds returns the slice range of page over n rows. The range is always
// valid for a slice of length n.
func PageBounds(page, n int) (start, end int) {
	if n <= 0 {
		return 0, 0
	}
	page = ClampPage(page, n)
	start = page * PageSize
	end = min(start+PageSize, n)
	return start, end
}
