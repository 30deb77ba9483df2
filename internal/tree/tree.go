// Package tree holds the in-memory navigation state for the remote
// directory: a stack of visited frames, the current listing, and the
// selection within it.
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwren/radiola/internal/domain"
)

// NoSelection is the cursor value for an empty listing. Rendering treats it
// as "no selectable row", distinct from row 0.
const NoSelection = -1

// resolver abstracts the directory cache (consumer-defined interface)
type resolver interface {
	Get(ctx context.Context, url string) (domain.Listing, error)
}

// frame is one level of the navigation path
type frame struct {
	node    domain.Node // the directory that produced this listing
	listing domain.Listing
	cursor  int
}

// Model is the navigation path through the directory tree. The root frame
// always exists and cannot be popped.
type Model struct {
	cache  resolver
	frames []frame
}

// New creates a navigation model rooted at the given directory node. The
// root listing may start empty and be filled in by ReplaceCurrent once the
// first fetch completes.
func New(cache resolver, root domain.Node, listing domain.Listing) *Model {
	return &Model{
		cache: cache,
		frames: []frame{{
			node:    root,
			listing: listing,
			cursor:  initialCursor(listing),
		}},
	}
}

func initialCursor(l domain.Listing) int {
	if len(l) == 0 {
		return NoSelection
	}
	return 0
}

// Current returns the active listing and selected index for rendering
func (m *Model) Current() (domain.Listing, int) {
	top := &m.frames[len(m.frames)-1]
	return top.listing, top.cursor
}

// Selected returns the node under the cursor, if any
func (m *Model) Selected() (domain.Node, bool) {
	top := &m.frames[len(m.frames)-1]
	if top.cursor == NoSelection {
		return domain.Node{}, false
	}
	return top.listing[top.cursor], true
}

// Depth returns the number of frames on the path (root = 1)
func (m *Model) Depth() int { return len(m.frames) }

// Breadcrumb joins the frame titles into a path string for the title bar
func (m *Model) Breadcrumb() string {
	parts := make([]string, 0, len(m.frames))
	for _, f := range m.frames {
		if f.node.Title != "" {
			parts = append(parts, f.node.Title)
		}
	}
	return strings.Join(parts, " > ")
}

// Enter resolves the directory at index and pushes a new frame with the
// selection reset to the top. A fetch or parse failure aborts the push: the
// path is untouched and the error goes back to the caller for display.
// Entering a stream is the caller's mistake; playback routing happens above
// this model.
func (m *Model) Enter(ctx context.Context, index int) error {
	top := &m.frames[len(m.frames)-1]
	if index < 0 || index >= len(top.listing) {
		return fmt.Errorf("no entry at index %d", index)
	}
	node := top.listing[index]
	if !node.IsDirectory() {
		return fmt.Errorf("%q is not a directory", node.Title)
	}

	listing, err := m.resolve(ctx, node)
	if err != nil {
		return err
	}
	m.Push(node, listing)
	return nil
}

func (m *Model) resolve(ctx context.Context, node domain.Node) (domain.Listing, error) {
	if node.HasInlineListing() {
		return domain.Listing(node.Children), nil
	}
	return m.cache.Get(ctx, node.URL)
}

// Resolve fetches the listing a directory node would open, without mutating
// the path. The TUI runs this off the event loop and pushes on completion.
func (m *Model) Resolve(ctx context.Context, node domain.Node) (domain.Listing, error) {
	return m.resolve(ctx, node)
}

// Push appends a frame for an already-resolved directory
func (m *Model) Push(node domain.Node, listing domain.Listing) {
	m.frames = append(m.frames, frame{
		node:    node,
		listing: listing,
		cursor:  initialCursor(listing),
	})
}

// Back pops the current frame, restoring the parent's selection. At the root
// it is a no-op, never an error.
func (m *Model) Back() bool {
	if len(m.frames) == 1 {
		return false
	}
	m.frames = m.frames[:len(m.frames)-1]
	return true
}

// Move adjusts the selection by delta, clamped to the listing bounds. Empty
// listings stay at NoSelection.
func (m *Model) Move(delta int) {
	top := &m.frames[len(m.frames)-1]
	if top.cursor == NoSelection {
		return
	}
	top.cursor += delta
	if top.cursor < 0 {
		top.cursor = 0
	}
	if top.cursor > len(top.listing)-1 {
		top.cursor = len(top.listing) - 1
	}
}

// MoveTop jumps the selection to the first entry
func (m *Model) MoveTop() {
	top := &m.frames[len(m.frames)-1]
	if top.cursor != NoSelection {
		top.cursor = 0
	}
}

// MoveBottom jumps the selection to the last entry
func (m *Model) MoveBottom() {
	top := &m.frames[len(m.frames)-1]
	if top.cursor != NoSelection {
		top.cursor = len(top.listing) - 1
	}
}

// SetCursor places the selection at index, clamped. Used when a filtered
// view maps its selection back onto the listing.
func (m *Model) SetCursor(index int) {
	top := &m.frames[len(m.frames)-1]
	if top.cursor == NoSelection {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(top.listing)-1 {
		index = len(top.listing) - 1
	}
	top.cursor = index
}

// ReplaceCurrent swaps the active frame's listing in place after a manual
// refresh, keeping the cursor clamped to the new bounds.
func (m *Model) ReplaceCurrent(listing domain.Listing) {
	top := &m.frames[len(m.frames)-1]
	top.listing = listing
	if len(listing) == 0 {
		top.cursor = NoSelection
		return
	}
	if top.cursor == NoSelection {
		top.cursor = 0
	}
	if top.cursor > len(listing)-1 {
		top.cursor = len(listing) - 1
	}
}

// CurrentNode returns the directory node that produced the active frame's
// listing. For the root frame that is the configured root directory.
func (m *Model) CurrentNode() domain.Node {
	return m.frames[len(m.frames)-1].node
}
