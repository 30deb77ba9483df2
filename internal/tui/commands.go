package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwren/radiola/internal/domain"
	"github.com/mwren/radiola/internal/favorites"
	"github.com/mwren/radiola/internal/player"
	"github.com/mwren/radiola/internal/tree"
)

// Command factories for async operations

const fetchTimeout = 30 * time.Second

// EnterDirectoryCmd resolves a directory node's listing off the event loop.
// The result carries the node's URL so the model can discard completions the
// user has already navigated away from.
func EnterDirectoryCmd(nav *tree.Model, node domain.Node) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		listing, err := nav.Resolve(ctx, node)
		if err != nil {
			return ListingFailedMsg{URL: node.URL, Err: err}
		}
		return ListingLoadedMsg{URL: node.URL, Parent: node, Listing: listing}
	}
}

// LoadRootCmd resolves the root directory into the existing root frame,
// going through the cache. Used at startup so the UI comes up immediately
// with a loading indicator instead of blocking on the network.
func LoadRootCmd(nav *tree.Model, root domain.Node) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		listing, err := nav.Resolve(ctx, root)
		if err != nil {
			return ListingFailedMsg{URL: root.URL, Err: err}
		}
		return ListingLoadedMsg{URL: root.URL, Parent: root, Listing: listing, Refresh: true}
	}
}

// refresher is the slice of the cache the refresh path needs
type refresher interface {
	Refresh(ctx context.Context, url string) (domain.Listing, error)
}

// RefreshCmd refetches the current frame's URL, bypassing the cached entry.
// Failure leaves both the frame and the cache entry as they were.
func RefreshCmd(cache refresher, node domain.Node) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		listing, err := cache.Refresh(ctx, node.URL)
		if err != nil {
			return ListingFailedMsg{URL: node.URL, Err: err}
		}
		return ListingLoadedMsg{URL: node.URL, Parent: node, Listing: listing, Refresh: true}
	}
}

// PlayCmd starts playback of a stream, replacing any active session
func PlayCmd(session *player.Session, title, url string) tea.Cmd {
	return func() tea.Msg {
		if err := session.Play(url, title); err != nil {
			return ErrMsg{Err: err, Context: "starting playback"}
		}
		return PlaybackStartedMsg{Title: title, URL: url}
	}
}

// StopCmd stops the active playback session
func StopCmd(session *player.Session) tea.Cmd {
	return func() tea.Msg {
		session.Stop()
		return PlaybackStoppedMsg{}
	}
}

// ListenExitCmd blocks on the session's exit channel and reports the next
// unsolicited player exit. The model re-issues it after every receipt.
func ListenExitCmd(session *player.Session) tea.Cmd {
	return func() tea.Msg {
		return PlayerExitMsg{Event: <-session.Exits()}
	}
}

// MetadataCmd polls the player for stream metadata after a delay
func MetadataCmd(session *player.Session, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return MetadataMsg{Title: session.Metadata(ctx)}
	})
}

// SaveFavoritesCmd persists the favorites list
func SaveFavoritesCmd(store *favorites.Store) tea.Cmd {
	return func() tea.Msg {
		return FavoritesSavedMsg{Err: store.Save()}
	}
}

// TickCmd drives the loading spinner
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status line after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
