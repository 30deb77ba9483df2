package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwren/radiola/internal/cache"
	"github.com/mwren/radiola/internal/config"
	"github.com/mwren/radiola/internal/domain"
	"github.com/mwren/radiola/internal/favorites"
	"github.com/mwren/radiola/internal/log"
	"github.com/mwren/radiola/internal/opml"
	"github.com/mwren/radiola/internal/player"
	"github.com/mwren/radiola/internal/tree"
	"github.com/mwren/radiola/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var rootURL string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&rootURL, "url", "", "root directory URL (overrides config)")
	flag.Parse()

	if showVersion {
		fmt.Printf("radiola %s\n", Version)
		return
	}

	if err := run(rootURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rootURL string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rootURL != "" {
		cfg.Directory.RootURL = rootURL
	}

	logger, err := log.Setup(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.Null()
	}
	slog.SetDefault(logger)

	logger.Info("starting radiola", "version", Version, "root", cfg.Directory.RootURL)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	// The favorites directory must be usable before the UI starts; this is
	// the one unrecoverable persistence failure.
	if err := os.MkdirAll(filepath.Dir(cfg.Favorites.File), 0755); err != nil {
		return fmt.Errorf("cannot create favorites directory: %w", err)
	}

	client := opml.NewClient(logger)

	store, err := cache.NewStore(cfg.Cache.Dir, client, cfg.Cache.MaxAge, logger)
	if err != nil {
		// A broken cache dir only costs persistence; run memory-only.
		logger.Warn("directory cache unavailable, running without persistence", "error", err)
		store, _ = cache.NewStore("", client, 0, logger)
	}
	defer store.Close()

	favs := favorites.NewStore(cfg.Favorites.File, logger)
	favs.LegacyPaths = config.LegacyFavoritesPaths()
	favs.Load()

	session := player.NewSession(cfg.Player.Command, cfg.Player.Args, logger)
	defer session.Stop()

	root := domain.Node{
		Kind:  domain.KindDirectory,
		Title: "Radio",
		URL:   opml.UpgradeURL(cfg.Directory.RootURL),
	}
	nav := tree.New(store, root, nil)

	model := tui.NewModel(nav, favs, session, store, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
