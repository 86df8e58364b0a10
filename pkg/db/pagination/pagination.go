package pagination

// PageRequest is a zero-based page number with a fixed size. Callers cannot
// pick the size; listing endpoints always serve DefaultPageSize records.
type PageRequest struct {
	Page int
	Size int
}

const DefaultPageSize = 10

func NewPageRequest(page int) PageRequest {
	if page < 0 {
		page = 0
	}
	return PageRequest{Page: page, Size: DefaultPageSize}
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

func (p PageRequest) Limit() int {
	return p.Size
}

// TotalPages rounds up, with zero totals reported as zero pages.
func TotalPages(total int64, size int) int64 {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return pages
}
