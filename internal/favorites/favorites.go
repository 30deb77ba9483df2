// Package favorites is the persisted, user-ordered list of saved stations.
// It is independent of the remote tree: entries are value copies and the
// slice order is the user's order.
package favorites

import (
	"encoding/xml"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mwren/radiola/internal/domain"
)

// Direction of a reorder operation
type Direction int

const (
	Up Direction = iota
	Down
)

// opmlDoc is the on-disk favourites format: a flat OPML body of audio
// outlines, compatible with what curseradio wrote.
type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Body    struct {
		Outlines []outline `xml:"outline"`
	} `xml:"body"`
}

type outline struct {
	Text string `xml:"text,attr"`
	Type string `xml:"type,attr"`
	URL  string `xml:"URL,attr"`
}

// Store holds the favorites list and its backing file. Mutations come from
// the UI event loop, but Save runs on a command goroutine, so the list is
// guarded by a mutex. Save snapshots under the lock and does file IO outside
// it.
type Store struct {
	path   string
	logger *slog.Logger

	// LegacyPaths are older favourites files to read when path is missing,
	// e.g. a curseradio install being migrated.
	LegacyPaths []string

	mu   sync.Mutex
	list []domain.Favorite
}

// NewStore creates a favorites store backed by the given file
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// List returns the favorites in user order
func (s *Store) List() []domain.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

// Len returns the number of favorites
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

// Add appends a favorite at the end. If the URL is already present the
// existing entry's title is replaced in place, its position kept, and Add
// reports false.
func (s *Store) Add(title, url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.list {
		if f.URL == url {
			s.list[i].Title = title
			return false
		}
	}
	s.list = append(s.list, domain.Favorite{Title: title, URL: url})
	return true
}

// Remove deletes the entry at index; later entries shift up
func (s *Store) Remove(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.list) {
		return false
	}
	s.list = append(s.list[:index], s.list[index+1:]...)
	return true
}

// Move swaps the entry at index with its neighbor. Moving the first entry
// up or the last entry down is a no-op.
func (s *Store) Move(index int, dir Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := index - 1
	if dir == Down {
		j = index + 1
	}
	if index < 0 || index >= len(s.list) || j < 0 || j >= len(s.list) {
		return false
	}
	s.list[index], s.list[j] = s.list[j], s.list[index]
	return true
}

// Load reads the favorites file. A missing or corrupt file degrades to an
// empty list with a warning; favorites are convenience state, not critical
// data.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil

	for _, path := range append([]string{s.path}, s.LegacyPaths...) {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			s.logger.Warn("cannot read favorites, starting empty", "path", path, "error", err)
			return
		}

		var doc opmlDoc
		if err := xml.Unmarshal(data, &doc); err != nil {
			s.logger.Warn("favorites file is corrupt, starting empty", "path", path, "error", err)
			return
		}
		for _, o := range doc.Body.Outlines {
			if o.Text == "" || o.URL == "" {
				continue
			}
			s.list = append(s.list, domain.Favorite{Title: o.Text, URL: o.URL})
		}
		return
	}
}

// Save writes the favorites file via a temp file and atomic rename, so a
// crash mid-write never truncates the previous version.
func (s *Store) Save() error {
	s.mu.Lock()
	doc := opmlDoc{}
	doc.Body.Outlines = make([]outline, len(s.list))
	for i, f := range s.list {
		doc.Body.Outlines[i] = outline{Text: f.Title, Type: "audio", URL: f.URL}
	}
	s.mu.Unlock()

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &domain.PersistenceError{Path: s.path, Op: "save", Err: err}
	}
	data = append([]byte(xml.Header), data...)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.PersistenceError{Path: s.path, Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".favourites-*.opml")
	if err != nil {
		return &domain.PersistenceError{Path: s.path, Op: "save", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.PersistenceError{Path: s.path, Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Path: s.path, Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Path: s.path, Op: "save", Err: err}
	}
	return nil
}
