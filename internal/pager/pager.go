// Package pager splits a list of entries into fixed-size pages and tracks
// which page a viewer is looking at.
package pager

import (
	"errors"
	"fmt"
	"sync"
)

const DefaultPageSize = 5

var (
	ErrNoPages        = errors.New("pager: no pages")
	ErrPageOutOfRange = errors.New("pager: page out of range")
)

// Entry is one line of a page.
type Entry struct {
	Name        string
	Description string
}

// Page is immutable once built.
type Page struct {
	Title       string
	Description string
	Entries     []Entry
	Footer      string
	Number      int
	Total       int
}

// View is a page plus the state of its navigation controls.
type View struct {
	Page        Page
	Index       int
	PrevEnabled bool
	NextEnabled bool
}

// Paginate chunks entries into pages of at most size entries, keeping order.
// Every page gets the same title and description and a "Page i/n" footer.
func Paginate(title, description string, entries []Entry, size int) []Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (len(entries) + size - 1) / size
	pages := make([]Page, 0, total)
	for i := 0; i < total; i++ {
		end := min((i+1)*size, len(entries))
		chunk := append([]Entry(nil), entries[i*size:end]...)
		pages = append(pages, Page{
			Title:       title,
			Description: description,
			Entries:     chunk,
			Footer:      fmt.Sprintf("Page %d/%d", i+1, total),
			Number:      i + 1,
			Total:       total,
		})
	}
	return pages
}

// Viewer is the navigation state of one displayed pager. Moves past either
// end are ignored.
type Viewer struct {
	mu    sync.Mutex
	owner string
	pages []Page
	index int
}

// NewViewer returns a viewer on the first page, owned by the given user.
func NewViewer(owner string, pages []Page) (*Viewer, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return &Viewer{owner: owner, pages: pages}, nil
}

// Owner is the user allowed to navigate.
func (v *Viewer) Owner() string { return v.owner }

// Len is the number of pages.
func (v *Viewer) Len() int { return len(v.pages) }

// Render returns the view of page index without moving the viewer.
func (v *Viewer) Render(index int) (View, error) {
	if index < 0 || index >= len(v.pages) {
		return View{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, len(v.pages))
	}
	return View{
		Page:        v.pages[index],
		Index:       index,
		PrevEnabled: index > 0,
		NextEnabled: index < len(v.pages)-1,
	}, nil
}

// Current returns the view of the current page.
func (v *Viewer) Current() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.render()
}

// Advance moves one page forward, if possible, and returns the resulting view.
func (v *Viewer) Advance() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.index < len(v.pages)-1 {
		v.index++
	}
	return v.render()
}

// Retreat moves one page back, if possible, and returns the resulting view.
func (v *Viewer) Retreat() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.index > 0 {
		v.index--
	}
	return v.render()
}

func (v *Viewer) render() View {
	view, _ := v.Render(v.index)
	return view
}
