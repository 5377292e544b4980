package tui

import (
	"fmt"
	"sync"

	"github.com/Iron-Ham/lazyfeed/internal/feed"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
	"github.com/Iron-Ham/lazyfeed/internal/tui/pane"
	"github.com/Iron-Ham/lazyfeed/internal/tui/styles"
)

// renderer writes the source's items into the pane the controller observes.
// It runs before a load's result reaches the controller, so the controller
// measures the new content when it recomputes Scrollable.
type renderer struct {
	panes  *pane.Manager
	items  Items
	styles *styles.Styles

	mu       sync.Mutex
	pane     string
	rendered int
	version  uint64
}

func newRenderer(panes *pane.Manager, items Items, st *styles.Styles, paneID string) *renderer {
	return &renderer{
		panes:    panes,
		items:    items,
		styles:   st,
		pane:     paneID,
		rendered: -1,
	}
}

// target returns the pane currently rendered into.
func (r *renderer) target() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pane
}

// moveTo renders into id from now on, carrying the current content over.
// It returns the previous pane.
func (r *renderer) moveTo(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.pane
	if id == prev {
		return prev
	}
	r.panes.SetLines(id, r.panes.Lines(prev))
	r.pane = id
	r.version = r.panes.Version(id)
	return prev
}

// render brings the pane up to date with the source. New items are appended
// while the pane still holds exactly what was last rendered; any other
// change to the pane is overwritten in full.
func (r *renderer) render() {
	items := r.items.Items()

	r.mu.Lock()
	defer r.mu.Unlock()
	untouched := r.rendered >= 0 && r.panes.Version(r.pane) == r.version
	switch {
	case untouched && len(items) == r.rendered:
		return
	case untouched && len(items) > r.rendered:
		r.panes.AppendLines(r.pane, r.lines(items[r.rendered:])...)
	default:
		r.panes.SetLines(r.pane, r.lines(items))
	}
	r.rendered = len(items)
	r.version = r.panes.Version(r.pane)
}

func (r *renderer) lines(items []feed.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		line := r.styles.ItemID.Render(fmt.Sprintf("#%d", item.ID)) + r.styles.Item.Render(item.Title)
		if item.Author != "" {
			line += " " + r.styles.Author.Render(item.Author)
		}
		out = append(out, line)
	}
	return out
}

// wrap returns a LoadFunc that renders the fetched items before the outcome
// is delivered. A result that is already available stays available.
func (r *renderer) wrap(load scroll.LoadFunc) scroll.LoadFunc {
	return func() <-chan error {
		inner := load()
		if inner == nil {
			r.render()
			return nil
		}

		out := make(chan error, 1)
		select {
		case err := <-inner:
			r.render()
			out <- err
		default:
			go func() {
				err := <-inner
				r.render()
				out <- err
			}()
		}
		return out
	}
}
