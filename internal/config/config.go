package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// DefaultRootURL is the top of the public radio directory
const DefaultRootURL = "https://opml.radiotime.com/"

// Config holds all application configuration
type Config struct {
	Directory DirectoryConfig `mapstructure:"directory"`
	Player    PlayerConfig    `mapstructure:"player"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DirectoryConfig holds remote directory configuration
type DirectoryConfig struct {
	RootURL string `mapstructure:"root_url"`
}

// PlayerConfig holds external player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// FavoritesConfig holds favorites persistence configuration
type FavoritesConfig struct {
	File string `mapstructure:"file"`
}

// CacheConfig holds directory cache configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
	// MaxAge bounds reuse of listings persisted by earlier runs; 0 keeps
	// them forever. Within a run entries stay valid until a manual refresh.
	MaxAge time.Duration `mapstructure:"max_age"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Directory: DirectoryConfig{
			RootURL: DefaultRootURL,
		},
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{"--terminal=no", "--video=no"},
		},
		Favorites: FavoritesConfig{
			File: filepath.Join(defaultDataPath(), "favourites.opml"),
		},
		Cache: CacheConfig{
			Dir:    filepath.Join(defaultDataPath(), "cache"),
			MaxAge: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "radiola.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the per-user data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "radiola")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "radiola")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "radiola")
	}
}

// defaultConfigPath returns the config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "radiola")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "radiola")
	}
}

// LegacyFavoritesPaths lists favourites files written by older programs
// worth migrating from, in preference order.
func LegacyFavoritesPaths() []string {
	var base string
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		base = xdg
	} else {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "share")
	}
	return []string{
		filepath.Join(base, "radio-curses", "favourites.opml"),
		filepath.Join(base, "curseradio", "favourites.opml"),
	}
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	v.SetEnvPrefix("RADIOLA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
