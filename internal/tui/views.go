package tui

import (
	"fmt"
	"strings"

	"github.com/mwren/radiola/internal/domain"
	"github.com/mwren/radiola/internal/tui/styles"
)

// View identifies the active screen
type View int

const (
	ViewBrowsing View = iota
	ViewFavorites
	ViewHelp
)

// row is one renderable list line
type row struct {
	title       string
	isDirectory bool
}

// helpEntries is the key table shown on the help screen
var helpEntries = [][2]string{
	{"h", "This help screen"},
	{"q, Esc", "Quit the program"},
	{"j, Down", "Move selection down"},
	{"k, Up", "Move selection up"},
	{"PgUp", "Page up"},
	{"PgDown", "Page down"},
	{"g, Home", "Move to first item"},
	{"G, End", "Move to last item"},
	{"Enter", "Open directory / play stream"},
	{"Left, Backspace", "Go back"},
	{"Tab", "Switch browse/favorites"},
	{"Insert", "Add selected stream to favorites"},
	{"Delete", "Remove favorite"},
	{"Shift-Up/Down", "Move favorite up/down"},
	{"/", "Filter current list"},
	{"r", "Refresh directory"},
}

// renderRows draws the visible window of a list with the cursor centered
// when possible. A cursor of tree.NoSelection renders a placeholder row.
func renderRows(rows []row, cursor, width, height int) string {
	if height < 1 {
		return ""
	}
	if len(rows) == 0 {
		return styles.DimStyle.Render(" (empty)")
	}

	offset := 0
	if cursor >= 0 && len(rows) > height {
		offset = cursor - height/2
		if offset < 0 {
			offset = 0
		}
		if offset > len(rows)-height {
			offset = len(rows) - height
		}
	}

	var b strings.Builder
	for i := offset; i < len(rows) && i < offset+height; i++ {
		r := rows[i]
		title := styles.Truncate(r.title, width-4)

		switch {
		case i == cursor:
			b.WriteString(styles.SelectedItemStyle.Render(title))
		case r.isDirectory:
			b.WriteString(styles.NormalItemStyle.Render(styles.DirectoryStyle.Render(title)))
		default:
			b.WriteString(styles.NormalItemStyle.Render(title))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// listingRows converts a directory listing for rendering. Directories get
// their trailing slash here, via the node's display title.
func listingRows(listing domain.Listing) []row {
	rows := make([]row, len(listing))
	for i, n := range listing {
		rows[i] = row{title: n.DisplayTitle(), isDirectory: n.IsDirectory()}
	}
	return rows
}

// favoriteRows converts the favorites list for rendering
func favoriteRows(favs []domain.Favorite) []row {
	rows := make([]row, len(favs))
	for i, f := range favs {
		rows[i] = row{title: f.Title}
	}
	return rows
}

// renderHelp draws the key binding table
func renderHelp(width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Key bindings"))
	b.WriteString("\n\n")
	for _, e := range helpEntries {
		key := styles.HelpKeyStyle.Render(fmt.Sprintf("  %-16s", e[0]))
		b.WriteString(key)
		b.WriteString(styles.HelpDescStyle.Render(e[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("  press any key to return"))
	return b.String()
}
