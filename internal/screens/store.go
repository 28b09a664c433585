package screens

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

//go:embed default-screens.json
var defaultScreens []byte

// Store holds the loaded screen list. Readers get an immutable snapshot;
// Reload swaps the whole list at once.
type Store struct {
	current atomic.Pointer[[]ScreenConfig]
	logger  *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	s := &Store{logger: logger}
	empty := []ScreenConfig{}
	s.current.Store(&empty)
	return s
}

// Load reads the configuration once when enabled. An empty path selects the
// built-in configuration. A read or parse failure leaves the store empty.
func Load(enabled bool, path string, logger *slog.Logger) *Store {
	s := NewStore(logger)
	if !enabled {
		logger.Info("default screens configuration loading is disabled")
		return s
	}
	if err := s.Reload(path); err != nil {
		logger.Error("failed to load screens configuration", "file", path, "error", err)
	}
	return s
}

// Reload replaces the snapshot with the contents of path, or the built-in
// configuration when path is empty. On error the store is emptied.
func (s *Store) Reload(path string) error {
	screens, err := read(path)
	if err != nil {
		empty := []ScreenConfig{}
		s.current.Store(&empty)
		return err
	}
	s.current.Store(&screens)
	s.logger.Info("loaded screens configuration", "screens", len(screens))
	return nil
}

// Screens returns the current snapshot. Callers must not modify it.
func (s *Store) Screens() []ScreenConfig {
	return *s.current.Load()
}

// Titles lists the configured screen titles in configuration order.
func (s *Store) Titles() []string {
	screens := s.Screens()
	titles := make([]string, 0, len(screens))
	for _, sc := range screens {
		titles = append(titles, sc.Title)
	}
	return titles
}

func read(path string) ([]ScreenConfig, error) {
	raw := defaultScreens
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read screens config: %w", err)
		}
		raw = b
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse screens config: %w", err)
	}
	if cfg.Screens == nil {
		cfg.Screens = []ScreenConfig{}
	}
	return cfg.Screens, nil
}
