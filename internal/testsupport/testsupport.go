// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelsift/internal/config"
	"reelsift/internal/grouping"
	"reelsift/internal/review"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Review.Journal = false

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WriteHistory writes a viewing-history CSV with the standard header and the
// provided rows under the test's output dir, returning its path.
func WriteHistory(t testing.TB, cfg *config.Config, rows ...string) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.OutputDir, "ViewingActivity.csv")
	content := "Title,Date\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write history fixture: %v", err)
	}
	return path
}

// SilentPresenter satisfies review.Presenter without producing output.
type SilentPresenter struct{}

func (SilentPresenter) GroupPrompt(*grouping.ShowGroup, int, int) {}
func (SilentPresenter) FilmPrompt(review.Candidate, int, int)     {}
func (SilentPresenter) Episodes(*grouping.ShowGroup)              {}
func (SilentPresenter) Invalid(string)                            {}
