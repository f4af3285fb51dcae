package models

type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
}

func NewPage[T any](items []T, total int64, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: total, PageNumber: page, PageSize: size}
}

// MapPage converts the items of a page, keeping its counters.
func MapPage[T, U any](p Page[T], fn func(*T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i := range p.Items {
		out[i] = fn(&p.Items[i])
	}
	return Page[U]{Items: out, TotalCount: p.TotalCount, PageNumber: p.PageNumber, PageSize: p.PageSize}
}

// ClampPage forces page and size to at least 1, substituting defaultSize for size < 1.
func ClampPage(page, size, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	return page, size
}
