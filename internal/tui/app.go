package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwren/radiola/internal/domain"
	"github.com/mwren/radiola/internal/favorites"
	"github.com/mwren/radiola/internal/player"
	"github.com/mwren/radiola/internal/tree"
)

const (
	statusTTL    = 4 * time.Second
	spinnerTick  = 100 * time.Millisecond
	metadataPoll = 10 * time.Second
)

// cacheControl is the slice of the directory cache the controller needs
type cacheControl interface {
	refresher
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Nav       *tree.Model
	Favorites *favorites.Store
	Session   *player.Session
	Cache     cacheControl
	Logger    *slog.Logger

	CurrentView View
	prevView    View // view to return to when leaving help

	favCursor int

	Width  int
	Height int
	Ready  bool

	// Status line
	StatusMsg   string
	StatusIsErr bool
	nowPlaying  string // metadata title from the player, if any

	// Async fetch state. pendingURL identifies the directory fetch in
	// flight; completions for any other URL are stale and dropped.
	Loading      bool
	SpinnerFrame int
	pendingURL   string

	// Incremental filter over the active list
	filterActive bool
	filterQuery  string
	filterCursor int

	quitting bool
}

// NewModel creates the application model. The root frame starts empty; Init
// kicks off the root directory load.
func NewModel(nav *tree.Model, favs *favorites.Store, session *player.Session, cache cacheControl, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		Nav:         nav,
		Favorites:   favs,
		Session:     session,
		Cache:       cache,
		Logger:      logger,
		CurrentView: ViewBrowsing,
		Loading:     true,
	}
}

// Init starts the root load, the spinner, and the player exit listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadRootCmd(m.Nav, m.Nav.CurrentNode()),
		ListenExitCmd(m.Session),
		TickCmd(spinnerTick),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if !m.Loading {
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(spinnerTick)

	case ListingLoadedMsg:
		return m.handleListingLoaded(msg)

	case ListingFailedMsg:
		return m.handleListingFailed(msg)

	case PlaybackStartedMsg:
		m.nowPlaying = ""
		return m.setStatus("▶ "+msg.Title, false,
			MetadataCmd(m.Session, 2*time.Second))

	case PlaybackStoppedMsg:
		m.nowPlaying = ""
		return m, nil

	case PlayerExitMsg:
		m.nowPlaying = ""
		model, cmd := m.setStatus("player exited", false, nil)
		return model, tea.Batch(cmd, ListenExitCmd(m.Session))

	case MetadataMsg:
		if msg.Title != "" {
			m.nowPlaying = msg.Title
		}
		if state, _ := m.Session.Status(); state == player.Playing {
			return m, MetadataCmd(m.Session, metadataPoll)
		}
		return m, nil

	case ErrMsg:
		m.Logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		var playErr *domain.PlaybackError
		if errors.As(msg.Err, &playErr) {
			return m.setStatus("could not start player: "+playErr.Err.Error(), true, nil)
		}
		return m.setStatus(msg.Err.Error(), true, nil)

	case FavoritesSavedMsg:
		if msg.Err != nil {
			m.Logger.Error("failed to save favorites", "error", msg.Err)
			return m.setStatus("could not save favorites: "+msg.Err.Error(), true, nil)
		}
		return m, nil

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError, nil)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// setStatus sets a transient status line message and schedules its clear
func (m Model) setStatus(msg string, isErr bool, extra tea.Cmd) (Model, tea.Cmd) {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	if extra != nil {
		return m, tea.Batch(ClearStatusCmd(statusTTL), extra)
	}
	return m, ClearStatusCmd(statusTTL)
}

func (m Model) handleListingLoaded(msg ListingLoadedMsg) (Model, tea.Cmd) {
	if msg.Refresh {
		// Root load or manual refresh: only apply to the frame that asked.
		if msg.URL != m.Nav.CurrentNode().URL {
			return m, nil
		}
		m.Loading = false
		m.Nav.ReplaceCurrent(msg.Listing)
		return m, nil
	}

	if msg.URL != m.pendingURL {
		// The user navigated away while this fetch was in flight.
		return m, nil
	}
	m.Loading = false
	m.pendingURL = ""
	m.Nav.Push(msg.Parent, msg.Listing)
	m.clearFilter()
	return m, nil
}

func (m Model) handleListingFailed(msg ListingFailedMsg) (Model, tea.Cmd) {
	current := m.Nav.CurrentNode().URL == msg.URL
	if msg.URL != m.pendingURL && !current {
		return m, nil
	}
	m.Loading = false
	m.pendingURL = ""

	var fetchErr *domain.FetchError
	var parseErr *domain.ParseError
	switch {
	case errors.As(msg.Err, &parseErr):
		m.Logger.Warn("malformed directory document", "url", msg.URL, "error", msg.Err)
		return m.setStatus("directory is malformed, try again later", true, nil)
	case errors.As(msg.Err, &fetchErr):
		m.Logger.Warn("directory fetch failed", "url", msg.URL, "error", msg.Err)
		return m.setStatus("cannot reach directory: "+fetchErr.Err.Error(), true, nil)
	default:
		return m.setStatus(msg.Err.Error(), true, nil)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.CurrentView == ViewHelp {
		m.CurrentView = m.prevView
		return m, nil
	}
	if m.filterActive {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.quitting = true
		return m, tea.Sequence(StopCmd(m.Session), tea.Quit)

	case key.Matches(msg, Keys.Help):
		m.prevView = m.CurrentView
		m.CurrentView = ViewHelp
		return m, nil

	case key.Matches(msg, Keys.SwitchView):
		if m.CurrentView == ViewBrowsing {
			m.CurrentView = ViewFavorites
			m.clampFavCursor()
		} else {
			m.CurrentView = ViewBrowsing
		}
		m.clearFilter()
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.filterActive = true
		m.filterQuery = ""
		m.filterCursor = 0
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, Keys.Up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, Keys.PageDown):
		m.moveSelection(m.listHeight())
		return m, nil
	case key.Matches(msg, Keys.PageUp):
		m.moveSelection(-m.listHeight())
		return m, nil
	case key.Matches(msg, Keys.Home):
		m.jumpSelection(true)
		return m, nil
	case key.Matches(msg, Keys.End):
		m.jumpSelection(false)
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, Keys.Back):
		return m.handleBack()

	case key.Matches(msg, Keys.Refresh):
		return m.handleRefresh()

	case key.Matches(msg, Keys.AddFavorite):
		return m.handleAddFavorite()

	case key.Matches(msg, Keys.RemoveFavorite):
		return m.handleRemoveFavorite()

	case key.Matches(msg, Keys.MoveFavUp):
		return m.handleMoveFavorite(favorites.Up)
	case key.Matches(msg, Keys.MoveFavDown):
		return m.handleMoveFavorite(favorites.Down)
	}

	return m, nil
}

// handleFilterKey routes keys while the incremental filter is open
func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.clearFilter()
		return m, nil

	case tea.KeyEnter:
		matches := m.filterMatches()
		if m.filterCursor < len(matches) {
			target := matches[m.filterCursor]
			if m.CurrentView == ViewBrowsing {
				m.Nav.SetCursor(target)
			} else {
				m.favCursor = target
			}
			m.clearFilter()
			return m.handleEnter()
		}
		m.clearFilter()
		return m, nil

	case tea.KeyUp:
		if m.filterCursor > 0 {
			m.filterCursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.filterCursor < len(m.filterMatches())-1 {
			m.filterCursor++
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.filterQuery) > 0 {
			m.filterQuery = m.filterQuery[:len(m.filterQuery)-1]
			m.filterCursor = 0
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.filterQuery += string(msg.Runes)
		m.filterCursor = 0
		return m, nil
	}
	return m, nil
}

func (m *Model) clearFilter() {
	m.filterActive = false
	m.filterQuery = ""
	m.filterCursor = 0
}

// filterMatches returns the underlying indices matching the filter query
func (m Model) filterMatches() []int {
	var titles []string
	if m.CurrentView == ViewBrowsing {
		listing, _ := m.Nav.Current()
		titles = make([]string, len(listing))
		for i, n := range listing {
			titles[i] = n.Title
		}
	} else {
		favs := m.Favorites.List()
		titles = make([]string, len(favs))
		for i, f := range favs {
			titles[i] = f.Title
		}
	}
	return filterTitles(m.filterQuery, titles)
}

func (m *Model) moveSelection(delta int) {
	if m.CurrentView == ViewBrowsing {
		m.Nav.Move(delta)
		return
	}
	if m.Favorites.Len() == 0 {
		return
	}
	m.favCursor += delta
	m.clampFavCursor()
}

func (m *Model) jumpSelection(top bool) {
	if m.CurrentView == ViewBrowsing {
		if top {
			m.Nav.MoveTop()
		} else {
			m.Nav.MoveBottom()
		}
		return
	}
	if top {
		m.favCursor = 0
	} else {
		m.favCursor = m.Favorites.Len() - 1
	}
	m.clampFavCursor()
}

func (m *Model) clampFavCursor() {
	if m.favCursor > m.Favorites.Len()-1 {
		m.favCursor = m.Favorites.Len() - 1
	}
	if m.favCursor < 0 {
		m.favCursor = 0
	}
}

// handleEnter opens the selected directory or plays the selected stream
func (m Model) handleEnter() (Model, tea.Cmd) {
	if m.CurrentView == ViewFavorites {
		favs := m.Favorites.List()
		if m.favCursor >= len(favs) {
			return m, nil
		}
		f := favs[m.favCursor]
		return m, PlayCmd(m.Session, f.Title, f.URL)
	}

	node, ok := m.Nav.Selected()
	if !ok {
		return m, nil
	}

	if node.IsStream() {
		return m, PlayCmd(m.Session, node.Title, node.URL)
	}

	// Inline directories need no fetch.
	if node.HasInlineListing() {
		m.Nav.Push(node, domain.Listing(node.Children))
		return m, nil
	}
	if node.URL == "" {
		return m, nil
	}
	if m.Loading {
		return m, nil // one fetch at a time
	}
	m.Loading = true
	m.pendingURL = node.URL
	return m, tea.Batch(EnterDirectoryCmd(m.Nav, node), TickCmd(spinnerTick))
}

func (m Model) handleBack() (Model, tea.Cmd) {
	if m.CurrentView == ViewFavorites {
		m.CurrentView = ViewBrowsing
		return m, nil
	}
	// Abandon any fetch still in flight; its completion will be stale.
	m.pendingURL = ""
	m.Loading = false
	m.Nav.Back()
	return m, nil
}

func (m Model) handleRefresh() (Model, tea.Cmd) {
	if m.CurrentView != ViewBrowsing || m.Loading {
		return m, nil
	}
	node := m.Nav.CurrentNode()
	if node.URL == "" {
		return m, nil
	}
	m.Loading = true
	return m, tea.Batch(RefreshCmd(m.Cache, node), TickCmd(spinnerTick))
}

func (m Model) handleAddFavorite() (Model, tea.Cmd) {
	if m.CurrentView != ViewBrowsing {
		return m, nil
	}
	node, ok := m.Nav.Selected()
	if !ok || !node.IsStream() {
		return m.setStatus("only streams can be favorites", true, nil)
	}
	if m.Favorites.Add(node.Title, node.URL) {
		model, cmd := m.setStatus("added to favorites: "+node.Title, false, nil)
		return model, tea.Batch(cmd, SaveFavoritesCmd(m.Favorites))
	}
	model, cmd := m.setStatus("already in favorites", false, nil)
	return model, tea.Batch(cmd, SaveFavoritesCmd(m.Favorites))
}

func (m Model) handleRemoveFavorite() (Model, tea.Cmd) {
	if m.CurrentView != ViewFavorites {
		return m, nil
	}
	if !m.Favorites.Remove(m.favCursor) {
		return m, nil
	}
	m.clampFavCursor()
	return m, SaveFavoritesCmd(m.Favorites)
}

func (m Model) handleMoveFavorite(dir favorites.Direction) (Model, tea.Cmd) {
	if m.CurrentView != ViewFavorites {
		return m, nil
	}
	if !m.Favorites.Move(m.favCursor, dir) {
		return m, nil
	}
	if dir == favorites.Up {
		m.favCursor--
	} else {
		m.favCursor++
	}
	return m, SaveFavoritesCmd(m.Favorites)
}

// listHeight is the number of list rows that fit between the title bar and
// the status line
func (m Model) listHeight() int {
	h := m.Height - 2
	if h < 1 {
		h = 1
	}
	return h
}
