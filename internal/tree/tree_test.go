package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/mwren/radiola/internal/domain"
)

// fakeResolver serves canned listings keyed by URL
type fakeResolver struct {
	listings map[string]domain.Listing
	err      error
}

func (f *fakeResolver) Get(ctx context.Context, url string) (domain.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.listings[url]
	if !ok {
		return nil, &domain.FetchError{URL: url, Err: errors.New("not found")}
	}
	return l, nil
}

func rootNode() domain.Node {
	return domain.Node{Kind: domain.KindDirectory, Title: "Radio", URL: "https://root"}
}

func newTestModel() (*Model, *fakeResolver) {
	r := &fakeResolver{listings: map[string]domain.Listing{
		"https://jazz.opml": {
			{Kind: domain.KindStream, Title: "WBGO", URL: "https://wbgo/stream"},
		},
	}}
	root := domain.Listing{
		{Kind: domain.KindDirectory, Title: "Jazz", URL: "https://jazz.opml"},
		{Kind: domain.KindStream, Title: "NPR", URL: "https://npr/stream"},
	}
	return New(r, rootNode(), root), r
}

func TestEnterPushesFrameAndResetsSelection(t *testing.T) {
	m, _ := newTestModel()

	if err := m.Enter(context.Background(), 0); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if m.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.Depth())
	}
	listing, cursor := m.Current()
	if len(listing) != 1 || listing[0].Title != "WBGO" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if cursor != 0 {
		t.Fatalf("cursor = %d, want 0", cursor)
	}
}

func TestBackRestoresParentSelection(t *testing.T) {
	m, _ := newTestModel()

	// Selection sits at index 0 on "Jazz" before entering.
	if err := m.Enter(context.Background(), 0); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if !m.Back() {
		t.Fatal("Back returned false above root")
	}
	if m.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", m.Depth())
	}
	_, cursor := m.Current()
	if cursor != 0 {
		t.Fatalf("cursor = %d, want preserved 0", cursor)
	}
}

func TestBackAtRootIsNoOp(t *testing.T) {
	m, _ := newTestModel()
	for i := 0; i < 3; i++ {
		if m.Back() {
			t.Fatal("Back popped the root frame")
		}
		if m.Depth() != 1 {
			t.Fatalf("depth = %d, want 1", m.Depth())
		}
	}
}

func TestEnterStreamIsRejected(t *testing.T) {
	m, _ := newTestModel()
	if err := m.Enter(context.Background(), 1); err == nil {
		t.Fatal("entering a stream should fail")
	}
	if m.Depth() != 1 {
		t.Fatalf("depth changed on rejected enter: %d", m.Depth())
	}
}

func TestEnterFetchFailurePreservesPath(t *testing.T) {
	m, r := newTestModel()
	r.err = &domain.FetchError{URL: "https://jazz.opml", Err: errors.New("404")}

	err := m.Enter(context.Background(), 0)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("got %v, want FetchError", err)
	}
	if m.Depth() != 1 {
		t.Fatalf("depth = %d, want 1 after aborted enter", m.Depth())
	}
	listing, cursor := m.Current()
	if len(listing) != 2 || cursor != 0 {
		t.Fatalf("prior frame corrupted: %d nodes, cursor %d", len(listing), cursor)
	}
}

func TestEnterInlineChildrenNeedsNoFetch(t *testing.T) {
	r := &fakeResolver{err: errors.New("resolver must not be called")}
	root := domain.Listing{
		{Kind: domain.KindDirectory, Title: "By Genre", Children: []domain.Node{
			{Kind: domain.KindStream, Title: "WQXR", URL: "https://wqxr/stream"},
		}},
	}
	m := New(r, rootNode(), root)

	if err := m.Enter(context.Background(), 0); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	listing, _ := m.Current()
	if len(listing) != 1 || listing[0].Title != "WQXR" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestMoveClampsToBounds(t *testing.T) {
	m, _ := newTestModel()

	deltas := []int{5, 100, -1, -100, 1, 1, 1, -2}
	for _, d := range deltas {
		m.Move(d)
		_, cursor := m.Current()
		if cursor < 0 || cursor > 1 {
			t.Fatalf("cursor %d out of bounds after Move(%d)", cursor, d)
		}
	}

	m.MoveBottom()
	if _, cursor := m.Current(); cursor != 1 {
		t.Fatalf("MoveBottom: cursor = %d, want 1", cursor)
	}
	m.MoveTop()
	if _, cursor := m.Current(); cursor != 0 {
		t.Fatalf("MoveTop: cursor = %d, want 0", cursor)
	}
}

func TestEmptyListingHasNoSelection(t *testing.T) {
	m := New(&fakeResolver{}, rootNode(), nil)

	_, cursor := m.Current()
	if cursor != NoSelection {
		t.Fatalf("cursor = %d, want NoSelection", cursor)
	}
	m.Move(1)
	m.MoveTop()
	m.MoveBottom()
	if _, cursor := m.Current(); cursor != NoSelection {
		t.Fatalf("cursor = %d after moves, want NoSelection", cursor)
	}
	if _, ok := m.Selected(); ok {
		t.Fatal("Selected reported a node in an empty listing")
	}
}

func TestReplaceCurrentClampsCursor(t *testing.T) {
	m, _ := newTestModel()
	m.MoveBottom()

	m.ReplaceCurrent(domain.Listing{{Kind: domain.KindStream, Title: "only"}})
	listing, cursor := m.Current()
	if len(listing) != 1 || cursor != 0 {
		t.Fatalf("cursor = %d with %d nodes", cursor, len(listing))
	}

	m.ReplaceCurrent(nil)
	if _, cursor := m.Current(); cursor != NoSelection {
		t.Fatalf("cursor = %d for empty replacement, want NoSelection", cursor)
	}
}

func TestBreadcrumb(t *testing.T) {
	m, _ := newTestModel()
	if got := m.Breadcrumb(); got != "Radio" {
		t.Fatalf("breadcrumb = %q", got)
	}
	if err := m.Enter(context.Background(), 0); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if got := m.Breadcrumb(); got != "Radio > Jazz" {
		t.Fatalf("breadcrumb = %q", got)
	}
}
