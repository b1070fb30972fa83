package pager

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{Name: fmt.Sprintf("cmd%d", i), Description: "does things"}
	}
	return out
}

func TestPaginate_PageCountAndOrder(t *testing.T) {
	for k := 0; k <= 23; k++ {
		pages := Paginate("Help", "desc", entries(k), 5)
		require.Len(t, pages, (k+4)/5, "k=%d", k)

		var flat []Entry
		for i, p := range pages {
			assert.LessOrEqual(t, len(p.Entries), 5)
			assert.NotEmpty(t, p.Entries)
			assert.Equal(t, i+1, p.Number)
			assert.Equal(t, len(pages), p.Total)
			assert.Equal(t, fmt.Sprintf("Page %d/%d", i+1, len(pages)), p.Footer)
			flat = append(flat, p.Entries...)
		}
		if k > 0 {
			assert.Equal(t, entries(k), flat)
		}
	}
}

func TestPaginate_DefaultSize(t *testing.T) {
	pages := Paginate("Help", "", entries(6), 0)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Entries, DefaultPageSize)
}

func TestViewer_EightEntries(t *testing.T) {
	v, err := NewViewer("u1", Paginate("Help", "", entries(8), 5))
	require.NoError(t, err)
	require.Equal(t, 2, v.Len())

	view := v.Current()
	assert.Len(t, view.Page.Entries, 5)
	assert.False(t, view.PrevEnabled)
	assert.True(t, view.NextEnabled)

	view = v.Advance()
	assert.Equal(t, 1, view.Index)
	assert.Len(t, view.Page.Entries, 3)
	assert.True(t, view.PrevEnabled)
	assert.False(t, view.NextEnabled)
}

func TestViewer_BoundariesClamp(t *testing.T) {
	v, err := NewViewer("u1", Paginate("Help", "", entries(12), 5))
	require.NoError(t, err)

	assert.Equal(t, 0, v.Retreat().Index)
	v.Advance()
	v.Advance()
	last := v.Advance()
	assert.Equal(t, 2, last.Index)
	assert.Equal(t, "Page 3/3", last.Page.Footer)
	assert.False(t, last.NextEnabled)
	assert.Equal(t, 1, v.Retreat().Index)
}

func TestViewer_SinglePageHasNoControls(t *testing.T) {
	v, err := NewViewer("u1", Paginate("Help", "", entries(3), 5))
	require.NoError(t, err)
	view := v.Advance()
	assert.Equal(t, 0, view.Index)
	assert.False(t, view.PrevEnabled)
	assert.False(t, view.NextEnabled)
}

func TestViewer_Errors(t *testing.T) {
	_, err := NewViewer("u1", nil)
	assert.ErrorIs(t, err, ErrNoPages)

	v, err := NewViewer("u1", Paginate("Help", "", entries(7), 5))
	require.NoError(t, err)
	_, err = v.Render(2)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	_, err = v.Render(-1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestViewer_ConcurrentNavigationStaysInRange(t *testing.T) {
	v, err := NewViewer("u1", Paginate("Help", "", entries(20), 5))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); v.Advance() }()
		go func() { defer wg.Done(); v.Retreat() }()
	}
	wg.Wait()

	idx := v.Current().Index
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 4)
}

func TestStore(t *testing.T) {
	s := NewStore(2, 0)
	v1, _ := NewViewer("a", Paginate("", "", entries(1), 5))
	v2, _ := NewViewer("b", Paginate("", "", entries(1), 5))
	v3, _ := NewViewer("c", Paginate("", "", entries(1), 5))

	id1 := s.Open(v1)
	id2 := s.Open(v2)
	assert.NotEqual(t, id1, id2)

	got, ok := s.Get(id1)
	require.True(t, ok)
	assert.Same(t, v1, got)

	// id2 is now least recently used.
	s.Open(v3)
	assert.Equal(t, 2, s.Len())
	_, ok = s.Get(id2)
	assert.False(t, ok)

	s.Close(id1)
	_, ok = s.Get(id1)
	assert.False(t, ok)
}

func TestStore_IdleViewersExpire(t *testing.T) {
	s := NewStore(8, 30*time.Millisecond)
	v, _ := NewViewer("a", Paginate("", "", entries(1), 5))
	id := s.Open(v)

	_, ok := s.Get(id)
	require.True(t, ok)

	time.Sleep(80 * time.Millisecond)
	_, ok = s.Get(id)
	assert.False(t, ok)
}
