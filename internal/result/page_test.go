package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageArithmetic(t *testing.T) {
	cases := []struct {
		name       string
		page       Page[int]
		totalPages int
		hasPrev    bool
		hasNext    bool
	}{
		{"empty", Page[int]{PageNumber: 1, PageSize: 10, TotalCount: 0}, 0, false, false},
		{"single partial page", Page[int]{PageNumber: 1, PageSize: 10, TotalCount: 7}, 1, false, false},
		{"exact multiple", Page[int]{PageNumber: 1, PageSize: 10, TotalCount: 20}, 2, false, true},
		{"middle page", Page[int]{PageNumber: 2, PageSize: 10, TotalCount: 25}, 3, true, true},
		{"last page", Page[int]{PageNumber: 3, PageSize: 10, TotalCount: 25}, 3, true, false},
		{"past the end", Page[int]{PageNumber: 9, PageSize: 10, TotalCount: 25}, 3, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.totalPages, tc.page.TotalPages())
			assert.Equal(t, tc.hasPrev, tc.page.HasPreviousPage())
			assert.Equal(t, tc.hasNext, tc.page.HasNextPage())
		})
	}
}
