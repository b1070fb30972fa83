package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeTpl(t *testing.T) {
	ts := time.Date(2023, time.November, 10, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		tpl  string
		want string
	}{
		{"DD/MM/YYYY", "10/11/2023"},
		{"YYYY-MM-DD hh:mm", "2023-11-10 14:05"},
		{"hh:mm AP", "14:05 PM"},
		{"YY.MM.DD ss", "23.11.10 09"},
	}
	for _, tt := range tests {
		t.Run(tt.tpl, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeTpl(ts, tt.tpl))
		})
	}

	assert.Empty(t, FormatTimeTpl(time.Time{}, "YYYY"))
}

func TestParallel(t *testing.T) {
	var sum atomic.Int64
	err := Parallel(context.Background(), []int{1, 2, 3, 4}, 2, func(_ context.Context, n int) error {
		sum.Add(int64(n))
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), sum.Load())

	boom := errors.New("boom")
	err = Parallel(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, n int) error {
		if n == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, Parallel(context.Background(), []int(nil), 4, func(context.Context, int) error { return nil }))
}
