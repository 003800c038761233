package chameleon

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
		want    []rowRange
	}{
		{"empty", 0, 4, nil},
		{"sequential", 10, 1, []rowRange{{0, 10}}},
		{"zero workers", 10, 0, []rowRange{{0, 10}}},
		{"even", 10, 2, []rowRange{{0, 5}, {5, 10}}},
		{"uneven", 10, 3, []rowRange{{0, 4}, {4, 8}, {8, 10}}},
		{"more workers than rows", 3, 8, []rowRange{{0, 1}, {1, 2}, {2, 3}}},
		{"single row", 1, 8, []rowRange{{0, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitRows(tt.n, tt.workers))
		})
	}
}

func TestForEachRowRangeCoversAllRows(t *testing.T) {
	const n = 97
	for _, workers := range []int{1, 2, 7, 200} {
		seen := make([]int32, n)
		err := forEachRowRange(n, workers, func(_ int, r rowRange) error {
			for i := r.start; i < r.end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
			return nil
		})
		assert.NoError(t, err)
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("workers=%d: row %d visited %d times", workers, i, c)
			}
		}
	}
}

func TestForEachRowRangePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := forEachRowRange(10, 4, func(w int, _ rowRange) error {
		if w == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
