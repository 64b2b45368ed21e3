package store

// NormalizePage clamps a 1-based page number and a page size to sane values.
// A non-positive page becomes 1; a non-positive size falls back to def.
func NormalizePage(page, pageSize, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = def
	}
	return page, pageSize
}

// TotalPages returns the number of pages needed for total items at pageSize
// per page. Zero items is zero pages.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PageBounds returns the half-open [start, end) slice bounds for the given
// page over a collection of n items.
func PageBounds(page, pageSize, n int) (int, int) {
	start := (page - 1) * pageSize
	if start > n {
		start = n
	}
	end := start + pageSize
	if end > n {
		end = n
	}
	return start, end
}
