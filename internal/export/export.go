package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"reelsift/internal/grouping"
	"reelsift/internal/history"
	"reelsift/internal/review"
)

// letterboxdColumns is the exact header the Letterboxd import endpoint
// expects. Every column is always present; unknown fields stay blank.
var letterboxdColumns = []string{
	"LetterboxdURI", "tmdbID", "imdbID", "Title", "Year", "Directors",
	"Rating", "Rating10", "WatchedDate", "Rewatch", "Tags", "Review",
}

// RangePrefix builds the shared filename prefix for a date window:
// "<end>_<start>" in yyyymmdd, with "ALL" standing in for an open bound.
func RangePrefix(window history.Window) string {
	return fmt.Sprintf("%s_%s", yyyymmdd(window.End), yyyymmdd(window.Start))
}

func yyyymmdd(t time.Time) string {
	if t.IsZero() {
		return "ALL"
	}
	return t.Format("20060102")
}

// Files names the three artifacts one session produces.
type Files struct {
	Prelist     string
	DiscardedTV string
	Import      string
	ImportRows  int
}

// Writer serializes a session outcome into the three output CSVs.
type Writer struct {
	dir    string
	prefix string
	tag    string
}

// NewWriter builds a writer for the given output directory and date window.
// tag, when non-empty, fills the Tags column of every import row.
func NewWriter(dir string, window history.Window, tag string) *Writer {
	return &Writer{dir: dir, prefix: RangePrefix(window), tag: tag}
}

// WriteAll writes the prelist review, discarded-TV, and Letterboxd import
// files. A write failure is fatal for the run; no partial-write recovery.
func (w *Writer) WriteAll(outcome review.Outcome) (Files, error) {
	files := Files{
		Prelist:     filepath.Join(w.dir, w.prefix+"_prelist_review.csv"),
		DiscardedTV: filepath.Join(w.dir, w.prefix+"_discarded_tv.csv"),
		Import:      filepath.Join(w.dir, w.prefix+"_letterboxd_import.csv"),
	}

	if err := writeFile(files.Prelist, func(out io.Writer) error {
		return WritePrelist(out, outcome.Films)
	}); err != nil {
		return files, err
	}
	if err := writeFile(files.DiscardedTV, func(out io.Writer) error {
		return WriteDiscardedTV(out, outcome.ConfirmedTV)
	}); err != nil {
		return files, err
	}

	approved := outcome.Approved()
	files.ImportRows = countImportRows(approved)
	if err := writeFile(files.Import, func(out io.Writer) error {
		return WriteImport(out, approved, w.tag)
	}); err != nil {
		return files, err
	}
	return files, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WritePrelist writes the film-candidate audit file: every decision with its
// approval marker and reason. Repeat views are kept; this file is the record
// of what the operator was asked.
func WritePrelist(out io.Writer, decisions []review.FilmDecision) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"Title", "WatchedDate", "Approve", "Reason"}); err != nil {
		return err
	}
	for _, d := range decisions {
		approve := "0"
		if d.Approved {
			approve = "1"
		}
		row := []string{d.Candidate.Record.Title, d.Candidate.Record.WatchedDate(), approve, d.Reason}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDiscardedTV writes the confirmed-TV audit file with the show key as
// the grouping reason.
func WriteDiscardedTV(out io.Writer, groups []*grouping.ShowGroup) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"Title", "WatchedDate", "Show"}); err != nil {
		return err
	}
	for _, group := range groups {
		for _, episode := range group.Episodes {
			row := []string{episode.Record.Title, episode.Record.WatchedDate(), group.Key}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteImport writes the Letterboxd import file for approved films only.
// Exact (Title, WatchedDate) repeats collapse to one row here; the endpoint
// treats them as the same diary entry.
func WriteImport(out io.Writer, approved []review.FilmDecision, tag string) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(letterboxdColumns); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(approved))
	for _, d := range approved {
		record := d.Candidate.Record
		key := record.Title + "\x00" + record.WatchedDate()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		row := make([]string, len(letterboxdColumns))
		row[3] = record.Title         // Title
		row[8] = record.WatchedDate() // WatchedDate
		row[10] = tag                 // Tags
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteImportFile writes the import CSV for approved decisions to path.
func WriteImportFile(path string, approved []review.FilmDecision, tag string) error {
	return writeFile(path, func(out io.Writer) error {
		return WriteImport(out, approved, tag)
	})
}

func countImportRows(approved []review.FilmDecision) int {
	seen := make(map[string]struct{}, len(approved))
	for _, d := range approved {
		seen[d.Candidate.Record.Title+"\x00"+d.Candidate.Record.WatchedDate()] = struct{}{}
	}
	return len(seen)
}
