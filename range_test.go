package servit_test

import (
	"testing"

	"github.com/sagarc03/servit"
	"github.com/stretchr/testify/assert"
)

func TestParseRange(t *testing.T) {
	const size = 100

	tests := []struct {
		name       string
		header     string
		size       int64
		want       servit.Range
		wantRanged bool
		wantErr    error
	}{
		{name: "absent", header: "", size: size},
		{name: "closed range", header: "bytes=0-9", size: size, want: servit.Range{Start: 0, End: 9}, wantRanged: true},
		{name: "middle range", header: "bytes=10-19", size: size, want: servit.Range{Start: 10, End: 19}, wantRanged: true},
		{name: "single byte", header: "bytes=5-5", size: size, want: servit.Range{Start: 5, End: 5}, wantRanged: true},
		{name: "open ended", header: "bytes=90-", size: size, want: servit.Range{Start: 90, End: 99}, wantRanged: true},
		{name: "end clamped", header: "bytes=50-500", size: size, want: servit.Range{Start: 50, End: 99}, wantRanged: true},
		{name: "last byte", header: "bytes=99-99", size: size, want: servit.Range{Start: 99, End: 99}, wantRanged: true},
		{name: "suffix", header: "bytes=-10", size: size, want: servit.Range{Start: 90, End: 99}, wantRanged: true},
		{name: "suffix larger than file", header: "bytes=-500", size: size, want: servit.Range{Start: 0, End: 99}, wantRanged: true},
		{name: "unit is case insensitive", header: "Bytes=0-1", size: size, want: servit.Range{Start: 0, End: 1}, wantRanged: true},
		{name: "surrounding whitespace", header: "  bytes= 3 - 4 ", size: size, want: servit.Range{Start: 3, End: 4}, wantRanged: true},

		{name: "other unit", header: "items=0-9", size: size},
		{name: "missing dash", header: "bytes=10", size: size},
		{name: "not a number", header: "bytes=a-b", size: size},
		{name: "bad end", header: "bytes=1-x", size: size},
		{name: "inverted", header: "bytes=20-10", size: size},
		{name: "multiple ranges", header: "bytes=0-1,5-6", size: size},
		{name: "only unit", header: "bytes=", size: size},
		{name: "bare dash", header: "bytes=-", size: size},

		{name: "start at size", header: "bytes=100-", size: size, wantErr: servit.ErrRangeNotSatisfiable},
		{name: "start past size", header: "bytes=200-300", size: size, wantErr: servit.ErrRangeNotSatisfiable},
		{name: "zero suffix", header: "bytes=-0", size: size, wantErr: servit.ErrRangeNotSatisfiable},
		{name: "empty file", header: "bytes=0-", size: 0, wantErr: servit.ErrRangeNotSatisfiable},
		{name: "suffix on empty file", header: "bytes=-5", size: 0, wantErr: servit.ErrRangeNotSatisfiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ranged, err := servit.ParseRange(tt.header, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, ranged)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRanged, ranged)
			assert.Equal(t, tt.want, got)
		})
	}
}
