package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPageParams(t *testing.T) {
	page, limit := ClampPageParams(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = ClampPageParams(-5, -1)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = ClampPageParams(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxLimit, limit)

	page, limit = ClampPageParams(2, 50)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, limit)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 20, 45)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(45), p.TotalItems)
	assert.Equal(t, 20, p.ItemsPerPage)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)

	p = NewPagination(3, 20, 45)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(1, 20, 0)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestNewPaginationExactMultiple(t *testing.T) {
	p := NewPagination(2, 20, 40)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNextPage)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 20, Offset(2, 20))
	assert.Equal(t, 90, Offset(10, 10))
}
