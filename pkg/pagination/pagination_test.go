package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		params      PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"defaults for zero values", PaginationParams{}, 1, 10},
		{"negative page clamps to 1", PaginationParams{Page: -3, PerPage: 20}, 1, 20},
		{"per page above cap clamps to 100", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"valid values pass through", PaginationParams{Page: 4, PerPage: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Validate()
			assert.Equal(t, tt.wantPage, tt.params.Page)
			assert.Equal(t, tt.wantPerPage, tt.params.PerPage)
		})
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 10}
	assert.Equal(t, 20, p.Offset())

	p = PaginationParams{Page: 1, PerPage: 25}
	assert.Equal(t, 0, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)

	assert.Equal(t, 2, pag.CurrentPage)
	assert.Equal(t, 10, pag.PerPage)
	assert.Equal(t, int64(35), pag.Total)
	assert.Equal(t, 4, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)
}

func TestNewPaginationLastPage(t *testing.T) {
	pag := NewPagination(4, 10, 35)

	assert.False(t, pag.HasNext)
	assert.True(t, pag.HasPrev)
}

func TestNewPaginationEmpty(t *testing.T) {
	pag := NewPagination(1, 10, 0)

	assert.Equal(t, 0, pag.TotalPages)
	assert.False(t, pag.HasNext)
	assert.False(t, pag.HasPrev)
}
