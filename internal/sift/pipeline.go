package sift

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"reelsift/internal/config"
	"reelsift/internal/export"
	"reelsift/internal/grouping"
	"reelsift/internal/history"
	"reelsift/internal/logging"
	"reelsift/internal/review"
)

// windowLayout is the ISO layout for --start/--end flag values.
const windowLayout = "2006-01-02"

// ParseWindow builds an inclusive date window from flag values. Empty strings
// leave that bound open.
func ParseWindow(start, end string) (history.Window, error) {
	var window history.Window
	if s := strings.TrimSpace(start); s != "" {
		parsed, err := time.Parse(windowLayout, s)
		if err != nil {
			return window, Wrap(ErrConfiguration, "window", fmt.Sprintf("start date %q must be YYYY-MM-DD", s), err)
		}
		window.Start = parsed
	}
	if e := strings.TrimSpace(end); e != "" {
		parsed, err := time.Parse(windowLayout, e)
		if err != nil {
			return window, Wrap(ErrConfiguration, "window", fmt.Sprintf("end date %q must be YYYY-MM-DD", e), err)
		}
		window.End = parsed
	}
	if !window.Start.IsZero() && !window.End.IsZero() && window.End.Before(window.Start) {
		return window, Wrap(ErrConfiguration, "window", "end date precedes start date", nil)
	}
	return window, nil
}

// Pipeline wires the loader, classifier, grouper, and export writer around a
// review session. The session itself stays interactive; the pipeline is the
// part both the review and scan commands share.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs a pipeline. A nil logger disables logging.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Prepared carries everything a session needs, plus load statistics for the
// operator.
type Prepared struct {
	Load   history.LoadResult
	Groups grouping.Result
	State  *review.State
}

// Prepare loads the export at path, applies the window, and groups the
// records.
func (p *Pipeline) Prepare(path string, window history.Window) (Prepared, error) {
	result, err := history.LoadFile(path, p.cfg.Input.DateFormat, window)
	if err != nil {
		return Prepared{}, Wrap(ErrInput, "load", path, err)
	}
	if result.Malformed > 0 {
		p.logger.Warn("skipped malformed rows", logging.Int("rows", result.Malformed))
	}

	groups := grouping.Group(result.Records)
	p.logger.Info("history loaded",
		logging.Int("records", len(result.Records)),
		logging.Int("groups", len(groups.Groups)),
		logging.Int("film_candidates", len(groups.Films)),
		logging.Int("out_of_window", result.OutOfWindow),
	)

	return Prepared{
		Load:   result,
		Groups: groups,
		State:  review.NewState(groups),
	}, nil
}

// Export serializes a session outcome into the three output files.
func (p *Pipeline) Export(outcome review.Outcome, window history.Window) (export.Files, error) {
	writer := export.NewWriter(p.cfg.Paths.OutputDir, window, p.cfg.Letterboxd.Tag)
	files, err := writer.WriteAll(outcome)
	if err != nil {
		return files, Wrap(ErrOutput, "export", "write output files", err)
	}
	p.logger.Info("outputs written",
		logging.String("import", files.Import),
		logging.Int("import_rows", files.ImportRows),
	)
	return files, nil
}

// BuildImport rebuilds the Letterboxd import from an operator-edited prelist.
func (p *Pipeline) BuildImport(prelistPath, outPath string) (int, error) {
	decisions, err := export.ReadPrelistFile(prelistPath)
	if err != nil {
		return 0, Wrap(ErrInput, "import", prelistPath, err)
	}
	approved := review.Outcome{Films: decisions}.Approved()

	if err := export.WriteImportFile(outPath, approved, p.cfg.Letterboxd.Tag); err != nil {
		return 0, Wrap(ErrOutput, "import", outPath, err)
	}
	p.logger.Info("import rebuilt",
		logging.String("import", outPath),
		logging.Int("approved", len(approved)),
	)
	return len(approved), nil
}
