package result

// Page is one offset-based slice of an ordered collection.
type Page[T any] struct {
	Items      []T
	PageNumber int
	PageSize   int
	TotalCount int
}

// TotalPages is ceil(TotalCount / PageSize). Zero when the page size is not
// positive, which only happens for hand-built values.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

func (p Page[T]) HasPreviousPage() bool { return p.PageNumber > 1 }

func (p Page[T]) HasNextPage() bool { return p.PageNumber < p.TotalPages() }
