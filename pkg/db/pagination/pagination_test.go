package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 0, Size: DefaultPageSize}, NewPageRequest(-5))
	assert.Equal(t, PageRequest{Page: 3, Size: DefaultPageSize}, NewPageRequest(3))
	assert.Equal(t, 30, NewPageRequest(3).Offset())
	assert.Equal(t, DefaultPageSize, NewPageRequest(3).Limit())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(0), TotalPages(5, 0))
}
