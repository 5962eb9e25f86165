package models

// DefaultPageSize is the page size a fresh console starts with.
const DefaultPageSize = 10

// PageSizes lists the page sizes the toolbar offers.
var PageSizes = []int{10, 20, 50, 100}

// IsPageSize reports whether n is one of PageSizes.
func IsPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// PageMeta describes one page of a list. The server may send TotalPages,
// HasNext and HasPrevious; they are carried for display but TotalPages()
// is always derived from TotalElements and Size.
type PageMeta struct {
	TotalElements int64 `json:"totalElements" example:"25"`
	Page          int   `json:"page" example:"0"`
	Size          int   `json:"size" example:"10"`
	ServerPages   int   `json:"totalPages,omitempty"`
	HasNext       bool  `json:"hasNext,omitempty"`
	HasPrevious   bool  `json:"hasPrevious,omitempty"`
}

// DefaultMeta is the metadata synthesized for a page the server did not
// describe.
func DefaultMeta(page, size int) PageMeta {
	return PageMeta{Page: page, Size: size}
}

// TotalPages is ceil(totalElements/size), never less than 1.
func (m PageMeta) TotalPages() int {
	total := m.TotalElements
	if total < 0 {
		total = 0
	}
	size := int64(m.Size)
	if size < 1 {
		size = 1
	}
	pages := int((total + size - 1) / size)
	if pages < 1 {
		return 1
	}
	return pages
}

// LastPage is the highest valid zero-based page index.
func (m PageMeta) LastPage() int {
	return m.TotalPages() - 1
}

// PagedResponse is the data of GET /api/users.
type PagedResponse[T any] struct {
	Items []T       `json:"items"`
	Meta  *PageMeta `json:"meta"`
}
