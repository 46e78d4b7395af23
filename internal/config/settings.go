package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/tabplot/internal/fetch"
	"github.com/ytget/tabplot/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyCacheDir       = "cache_directory"
	KeyMaxParallel    = "max_parallel_fetches"
	KeyDefaultColumns = "default_columns"
	KeyLanguage       = "app_language"
	KeyLastURL        = "last_url"
)

// Default values
const (
	DefaultMaxParallel = 2
	DefaultColumns     = "name x y"
	DefaultLanguage    = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetCacheDirectory returns the directory fetched files are stored in
func (s *Settings) GetCacheDirectory() string {
	dir := s.app.Preferences().String(KeyCacheDir)
	if dir == "" {
		dir = platform.DefaultCacheDir()
		s.SetCacheDirectory(dir)
	}
	return dir
}

// SetCacheDirectory sets the cache directory
func (s *Settings) SetCacheDirectory(dir string) {
	s.app.Preferences().SetString(KeyCacheDir, strings.TrimSpace(dir))
}

// GetMaxParallelFetches returns the maximum number of parallel fetches
func (s *Settings) GetMaxParallelFetches() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelFetches(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelFetches sets the maximum number of parallel fetches
func (s *Settings) SetMaxParallelFetches(count int) {
	if count < fetch.MinParallel {
		count = fetch.MinParallel
	}
	if count > fetch.MaxParallel {
		count = fetch.MaxParallel
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetDefaultColumns returns the column names offered when loading a table
func (s *Settings) GetDefaultColumns() string {
	cols := s.app.Preferences().String(KeyDefaultColumns)
	if strings.TrimSpace(cols) == "" {
		s.SetDefaultColumns(DefaultColumns)
		return DefaultColumns
	}
	return cols
}

// SetDefaultColumns sets the default column names; empty resets to DefaultColumns
func (s *Settings) SetDefaultColumns(cols string) {
	if strings.TrimSpace(cols) == "" {
		cols = DefaultColumns
	}
	s.app.Preferences().SetString(KeyDefaultColumns, cols)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastURL returns the last URL submitted for fetching
func (s *Settings) GetLastURL() string {
	return s.app.Preferences().String(KeyLastURL)
}

// SetLastURL remembers the last URL submitted for fetching
func (s *Settings) SetLastURL(url string) {
	s.app.Preferences().SetString(KeyLastURL, url)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
