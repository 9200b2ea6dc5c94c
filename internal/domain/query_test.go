package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		in       Page
		want     Page
		wantSkip int
	}{
		{name: "zero value", in: Page{}, want: Page{Page: 1, Size: 10}, wantSkip: 0},
		{name: "negative page", in: Page{Page: -3, Size: 5}, want: Page{Page: 1, Size: 5}, wantSkip: 0},
		{name: "size capped", in: Page{Page: 2, Size: 500}, want: Page{Page: 2, Size: 100}, wantSkip: 100},
		{
			name:     "page saturates",
			in:       Page{Page: math.MaxInt64 / 50, Size: 100},
			want:     Page{Page: math.MaxInt / 100, Size: 100},
			wantSkip: (math.MaxInt/100 - 1) * 100,
		},
		{
			name:     "max page",
			in:       Page{Page: math.MaxInt, Size: 1},
			want:     Page{Page: math.MaxInt, Size: 1},
			wantSkip: math.MaxInt - 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp(10, 100)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSkip, got.Skip())
			assert.GreaterOrEqual(t, got.Skip(), 0)
		})
	}
}
