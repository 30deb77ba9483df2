package tui

import (
	"github.com/mwren/radiola/internal/domain"
	"github.com/mwren/radiola/internal/player"
)

// Message types for the TUI

// ErrMsg represents an error surfaced to the status line
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListingLoadedMsg signals that a directory listing has been resolved. URL
// identifies the fetch so results for abandoned navigations can be dropped.
type ListingLoadedMsg struct {
	URL     string
	Parent  domain.Node
	Listing domain.Listing
	Refresh bool // replace the current frame instead of pushing
}

// ListingFailedMsg signals a failed directory resolution. The navigation
// that requested it is aborted; prior state stays intact.
type ListingFailedMsg struct {
	URL string
	Err error
}

// PlaybackStartedMsg signals that the player process launched
type PlaybackStartedMsg struct {
	Title string
	URL   string
}

// PlaybackStoppedMsg signals a user-requested stop finished
type PlaybackStoppedMsg struct{}

// PlayerExitMsg signals that the player process exited on its own
type PlayerExitMsg struct {
	Event player.ExitEvent
}

// MetadataMsg carries the stream's current icy title, possibly empty
type MetadataMsg struct {
	Title string
}

// FavoritesSavedMsg reports the outcome of a favorites save
type FavoritesSavedMsg struct {
	Err error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg drives the loading spinner
type TickMsg struct{}
