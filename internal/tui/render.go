package tui

import (
	"strings"

	"github.com/mwren/radiola/internal/player"
	"github.com/mwren/radiola/internal/tree"
	"github.com/mwren/radiola/internal/tui/styles"
)

// View renders the current frame
func (m Model) View() string {
	if !m.Ready || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n")

	if m.CurrentView == ViewHelp {
		b.WriteString(renderHelp(m.Width))
		return b.String()
	}

	b.WriteString(m.renderList())
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderTitleBar() string {
	var title string
	switch m.CurrentView {
	case ViewFavorites:
		title = "Favorites"
	case ViewHelp:
		title = "Help"
	default:
		title = m.Nav.Breadcrumb()
		if title == "" {
			title = "Radio"
		}
	}

	left := styles.TitleStyle.Render(styles.Truncate(title, m.Width-16))
	if m.Loading {
		spinner := styles.SpinnerStyle.Render(styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)])
		return left + " " + spinner + styles.DimStyle.Render(" loading")
	}
	return left + styles.DimStyle.Render("  (h - help)")
}

func (m Model) renderList() string {
	var rows []row
	var cursor int

	if m.CurrentView == ViewBrowsing {
		listing, cur := m.Nav.Current()
		rows = listingRows(listing)
		cursor = cur
	} else {
		favs := m.Favorites.List()
		rows = favoriteRows(favs)
		cursor = m.favCursor
		if len(favs) == 0 {
			cursor = tree.NoSelection
		}
	}

	if m.filterActive {
		matches := m.filterMatches()
		filtered := make([]row, len(matches))
		for i, idx := range matches {
			filtered[i] = rows[idx]
		}
		rows = filtered
		cursor = m.filterCursor
		if len(rows) == 0 {
			cursor = tree.NoSelection
		}
	}

	body := renderRows(rows, cursor, m.Width, m.listHeight())

	// Pad so the status line stays pinned to the bottom.
	lines := strings.Count(body, "\n")
	if body != "" && !strings.HasSuffix(body, "\n") {
		lines++
	}
	for ; lines < m.listHeight(); lines++ {
		body += "\n"
	}
	return body
}

func (m Model) renderStatusLine() string {
	if m.filterActive {
		return styles.FilterPromptStyle.Render("/" + m.filterQuery)
	}
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(styles.Truncate(m.StatusMsg, m.Width-1))
		}
		return styles.StatusStyle.Render(styles.Truncate(m.StatusMsg, m.Width-1))
	}

	state, title := m.Session.Status()
	if state == player.Playing || state == player.Starting {
		text := "▶ " + title
		if m.nowPlaying != "" && m.nowPlaying != title {
			text += " — " + m.nowPlaying
		}
		return styles.NowPlayingStyle.Render(styles.Truncate(text, m.Width-1))
	}
	return styles.DimStyle.Render("tab: favorites  enter: open/play  q: quit")
}
