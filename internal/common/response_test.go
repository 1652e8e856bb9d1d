package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		lastPage int64
	}{
		{"remainder adds a page", 1, 10, 25, 3},
		{"exact multiple", 1, 10, 20, 2},
		{"single partial page", 1, 10, 7, 1},
		{"zero total still has one page", 1, 10, 0, 1},
		{"one item", 1, 50, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.page, meta.CurrentPage)
			assert.Equal(t, tt.perPage, meta.PerPage)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.lastPage, meta.LastPage)
		})
	}
}
