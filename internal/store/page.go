package store

// Pagination defaults and bounds for collection endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page describes a page-number based pagination request.
type Page struct {
	Number int
	Size   int
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Number: 1, Size: DefaultPageSize}
}

// Normalize clamps the page parameters into valid bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int {
	return p.Normalize().Size
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.Size
}
