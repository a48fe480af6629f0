package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestPageNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page store.Page
		want store.Page
	}{
		{
			name: "defaults pass through",
			page: store.Page{Number: 1, Size: 20},
			want: store.Page{Number: 1, Size: 20},
		},
		{
			name: "zero values clamp to defaults",
			page: store.Page{},
			want: store.Page{Number: 1, Size: store.DefaultPageSize},
		},
		{
			name: "negative page clamps to first",
			page: store.Page{Number: -3, Size: 10},
			want: store.Page{Number: 1, Size: 10},
		},
		{
			name: "oversized page size clamps to max",
			page: store.Page{Number: 2, Size: 5000},
			want: store.Page{Number: 2, Size: store.MaxPageSize},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.page.Normalize())
		})
	}
}

func TestPageLimitOffset(t *testing.T) {
	t.Parallel()

	page := store.Page{Number: 3, Size: 25}
	assert.Equal(t, 25, page.Limit())
	assert.Equal(t, 50, page.Offset())

	first := store.DefaultPage()
	assert.Equal(t, store.DefaultPageSize, first.Limit())
	assert.Equal(t, 0, first.Offset())
}
