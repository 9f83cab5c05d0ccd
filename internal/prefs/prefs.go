// Package prefs persists dashboard preferences the operator changes at
// runtime, stored in ~/.config/minerdash/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/five82/minerdash/internal/theme"
)

var log = logrus.WithField("component", "prefs")

// Prefs holds runtime preferences.
type Prefs struct {
	Theme string `toml:"theme"`
	View  string `toml:"view,omitempty"` // component shown at startup
}

const defaultPrefsPath = "~/.config/minerdash/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used when nothing was saved.
func Default() Prefs {
	return Prefs{Theme: theme.Get("").Name}
}

// Load reads preferences from path. A missing or unreadable file yields
// defaults; problems other than a missing file are logged.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		log.WithError(err).Warn("prefs path unusable")
		return Default()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("path", resolved).Warn("read prefs")
		}
		return Default()
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		log.WithError(err).WithField("path", resolved).Warn("parse prefs")
		return Default()
	}
	p.Theme = theme.Get(p.Theme).Name
	p.View = strings.TrimSpace(p.View)
	return p
}

// Save writes preferences to path, creating directories as needed. The file
// is replaced atomically so a crash never leaves it truncated.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultPrefsPath)
	}
	return ExpandPath(path)
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
