package model

// Pagination defaults applied when the caller omits page parameters.
const (
	DefaultPageNum  = 1
	DefaultPageSize = 10
)

// Page is a 1-based offset window over a created_at DESC ordering.
type Page struct {
	Num  int
	Size int
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Num: DefaultPageNum, Size: DefaultPageSize}
}

// Offset returns the number of rows to skip. Offsets before the first row clamp to 0.
func (p Page) Offset() int {
	offset := (p.Num - 1) * p.Size
	if offset < 0 {
		return 0
	}
	return offset
}

// Empty reports whether the window cannot contain any rows.
func (p Page) Empty() bool {
	return p.Size <= 0
}
