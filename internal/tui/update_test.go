package tui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mwren/radiola/internal/domain"
	"github.com/mwren/radiola/internal/favorites"
	"github.com/mwren/radiola/internal/tree"
)

// staticResolver never fetches; navigation tests drive completions by hand
type staticResolver struct{}

func (staticResolver) Get(_ context.Context, url string) (domain.Listing, error) {
	return nil, &domain.FetchError{URL: url}
}

var jazzNode = domain.Node{Kind: domain.KindDirectory, Title: "Jazz", URL: "https://jazz.opml"}

func newUpdateModel(t *testing.T) Model {
	t.Helper()
	root := domain.Node{Kind: domain.KindDirectory, Title: "Radio", URL: "https://root.opml"}
	listing := domain.Listing{
		jazzNode,
		{Kind: domain.KindStream, Title: "NPR", URL: "https://npr/stream"},
	}
	nav := tree.New(staticResolver{}, root, listing)
	favs := favorites.NewStore(filepath.Join(t.TempDir(), "favourites.opml"), nil)

	m := NewModel(nav, favs, nil, nil, nil)
	m.Ready = true
	m.Loading = false
	return m
}

func TestStaleListingCompletionIsDropped(t *testing.T) {
	m := newUpdateModel(t)

	// Enter Jazz: the fetch goes in flight, tagged with its URL.
	m, _ = m.handleEnter()
	if m.pendingURL != jazzNode.URL || !m.Loading {
		t.Fatalf("pendingURL = %q, loading = %v", m.pendingURL, m.Loading)
	}

	// Navigate away before the fetch completes.
	m, _ = m.handleBack()
	if m.pendingURL != "" || m.Loading {
		t.Fatalf("back did not abandon the pending fetch")
	}

	// The abandoned fetch completes; its result must be discarded.
	next, _ := m.Update(ListingLoadedMsg{
		URL:     jazzNode.URL,
		Parent:  jazzNode,
		Listing: domain.Listing{{Kind: domain.KindStream, Title: "WBGO", URL: "https://wbgo/stream"}},
	})
	m = next.(Model)

	if m.Nav.Depth() != 1 {
		t.Fatalf("depth = %d, stale completion pushed a frame", m.Nav.Depth())
	}
	listing, _ := m.Nav.Current()
	if len(listing) != 2 || listing[0].Title != "Jazz" {
		t.Fatalf("root listing corrupted: %+v", listing)
	}
}

func TestMatchingCompletionPushesFrame(t *testing.T) {
	m := newUpdateModel(t)

	m, _ = m.handleEnter()
	next, _ := m.Update(ListingLoadedMsg{
		URL:     jazzNode.URL,
		Parent:  jazzNode,
		Listing: domain.Listing{{Kind: domain.KindStream, Title: "WBGO", URL: "https://wbgo/stream"}},
	})
	m = next.(Model)

	if m.Nav.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.Nav.Depth())
	}
	if m.Loading || m.pendingURL != "" {
		t.Fatalf("loading = %v, pendingURL = %q after push", m.Loading, m.pendingURL)
	}
	listing, _ := m.Nav.Current()
	if len(listing) != 1 || listing[0].Title != "WBGO" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestRefreshCompletionForOtherFrameIsDropped(t *testing.T) {
	m := newUpdateModel(t)

	// A refresh-tagged completion for a URL that is not the current frame's
	// (e.g. the user went back while a refresh was in flight).
	next, _ := m.Update(ListingLoadedMsg{
		URL:     jazzNode.URL,
		Parent:  jazzNode,
		Listing: domain.Listing{{Kind: domain.KindStream, Title: "WBGO", URL: "https://wbgo/stream"}},
		Refresh: true,
	})
	m = next.(Model)

	listing, _ := m.Nav.Current()
	if len(listing) != 2 || listing[0].Title != "Jazz" {
		t.Fatalf("current frame replaced by a stale refresh: %+v", listing)
	}
}

func TestStaleFailureIsDropped(t *testing.T) {
	m := newUpdateModel(t)

	m, _ = m.handleEnter()
	m, _ = m.handleBack()

	next, _ := m.Update(ListingFailedMsg{
		URL: jazzNode.URL,
		Err: &domain.FetchError{URL: jazzNode.URL},
	})
	m = next.(Model)

	if m.StatusMsg != "" {
		t.Fatalf("stale failure set status %q", m.StatusMsg)
	}
}
