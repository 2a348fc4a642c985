package export_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reelsift/internal/export"
	"reelsift/internal/grouping"
	"reelsift/internal/history"
	"reelsift/internal/review"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func decision(title, date string, approved bool, reason string) review.FilmDecision {
	return review.FilmDecision{
		Candidate: review.Candidate{Record: history.Record{Title: title, WatchedOn: day(date)}},
		Approved:  approved,
		Reason:    reason,
	}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	return rows
}

func TestRangePrefix(t *testing.T) {
	cases := []struct {
		window history.Window
		want   string
	}{
		{history.Window{Start: day("2018-01-01"), End: day("2018-12-31")}, "20181231_20180101"},
		{history.Window{Start: day("2018-01-01")}, "ALL_20180101"},
		{history.Window{End: day("2018-12-31")}, "20181231_ALL"},
		{history.Window{}, "ALL_ALL"},
	}
	for _, tc := range cases {
		if got := export.RangePrefix(tc.window); got != tc.want {
			t.Errorf("RangePrefix(%+v) = %q, want %q", tc.window, got, tc.want)
		}
	}
}

func TestWriteImportCanonicalHeader(t *testing.T) {
	var buf bytes.Buffer
	approved := []review.FilmDecision{decision("Inception", "2018-03-02", true, "")}
	if err := export.WriteImport(&buf, approved, "netflix"); err != nil {
		t.Fatalf("WriteImport failed: %v", err)
	}

	rows := parseCSV(t, buf.Bytes())
	wantHeader := []string{
		"LetterboxdURI", "tmdbID", "imdbID", "Title", "Year", "Directors",
		"Rating", "Rating10", "WatchedDate", "Rewatch", "Tags", "Review",
	}
	if strings.Join(rows[0], "|") != strings.Join(wantHeader, "|") {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][3] != "Inception" || rows[1][8] != "2018-03-02" || rows[1][10] != "netflix" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
	for _, i := range []int{0, 1, 2, 4, 5, 6, 7, 9, 11} {
		if rows[1][i] != "" {
			t.Fatalf("expected blank column %d, got %q", i, rows[1][i])
		}
	}
}

func TestWriteImportDeduplicatesExactRepeats(t *testing.T) {
	var buf bytes.Buffer
	approved := []review.FilmDecision{
		decision("Inception", "2018-03-02", true, ""),
		decision("Inception", "2018-03-02", true, ""),
		decision("Inception", "2018-04-01", true, ""),
	}
	if err := export.WriteImport(&buf, approved, ""); err != nil {
		t.Fatalf("WriteImport failed: %v", err)
	}
	rows := parseCSV(t, buf.Bytes())
	if len(rows) != 3 { // header + 2 distinct entries
		t.Fatalf("expected dedup to 2 rows, got %d", len(rows)-1)
	}
}

func TestWritePrelistKeepsEveryDecision(t *testing.T) {
	var buf bytes.Buffer
	decisions := []review.FilmDecision{
		decision("Inception", "2018-03-02", true, ""),
		decision("Inception", "2018-03-02", true, ""),
		decision("Bird Box", "2018-12-25", false, review.ReasonNotReviewed),
	}
	if err := export.WritePrelist(&buf, decisions); err != nil {
		t.Fatalf("WritePrelist failed: %v", err)
	}
	rows := parseCSV(t, buf.Bytes())
	if len(rows) != 4 {
		t.Fatalf("audit file must keep repeats, got %d rows", len(rows)-1)
	}
	if rows[1][2] != "1" || rows[3][2] != "0" {
		t.Fatalf("unexpected approve markers: %v", rows)
	}
	if rows[3][3] != review.ReasonNotReviewed {
		t.Fatalf("expected reason column, got %v", rows[3])
	}
}

func TestWriteDiscardedTVIncludesShowKey(t *testing.T) {
	var buf bytes.Buffer
	groups := []*grouping.ShowGroup{{
		Key: "friends",
		Episodes: []grouping.Episode{
			{Record: history.Record{Title: "Friends: The Pilot", WatchedOn: day("2018-03-01")}, Label: "The Pilot"},
		},
		Decision: grouping.ConfirmedTV,
	}}
	if err := export.WriteDiscardedTV(&buf, groups); err != nil {
		t.Fatalf("WriteDiscardedTV failed: %v", err)
	}
	rows := parseCSV(t, buf.Bytes())
	if rows[1][0] != "Friends: The Pilot" || rows[1][2] != "friends" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestWriteAllProducesThreeFiles(t *testing.T) {
	dir := t.TempDir()
	window := history.Window{Start: day("2018-01-01"), End: day("2018-12-31")}
	writer := export.NewWriter(dir, window, "")

	outcome := review.Outcome{
		ConfirmedTV: []*grouping.ShowGroup{{
			Key: "friends",
			Episodes: []grouping.Episode{
				{Record: history.Record{Title: "Friends: The Pilot", WatchedOn: day("2018-03-01")}},
			},
			Decision: grouping.ConfirmedTV,
		}},
		Films: []review.FilmDecision{decision("Inception", "2018-03-02", true, "")},
	}

	files, err := writer.WriteAll(outcome)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if files.ImportRows != 1 {
		t.Fatalf("expected 1 import row, got %d", files.ImportRows)
	}
	for _, path := range []string{files.Prelist, files.DiscardedTV, files.Import} {
		if !strings.HasPrefix(filepath.Base(path), "20181231_20180101_") {
			t.Fatalf("expected range prefix on %q", path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected file %q: %v", path, err)
		}
	}
}

func TestWriteAllQuitAtFirstPromptYieldsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writer := export.NewWriter(dir, history.Window{}, "")

	// All groups undecided: nothing confirmed, nothing decided.
	files, err := writer.WriteAll(review.Outcome{
		UndecidedGroups: []*grouping.ShowGroup{{Key: "friends"}},
		UnvisitedFilms:  []review.Candidate{{Record: history.Record{Title: "Inception", WatchedOn: day("2018-03-02")}}},
	})
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	for _, path := range []string{files.Import, files.DiscardedTV} {
		rows := parseCSV(t, readFile(t, path))
		if len(rows) != 1 {
			t.Fatalf("expected header only in %q, got %d rows", path, len(rows))
		}
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %q: %v", path, err)
	}
	return data
}

func TestReadPrelistRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	original := []review.FilmDecision{
		decision("Inception", "2018-03-02", true, ""),
		decision("Bird Box", "2018-12-25", false, ""),
	}
	if err := export.WritePrelist(&buf, original); err != nil {
		t.Fatalf("WritePrelist failed: %v", err)
	}

	parsed, err := export.ReadPrelist(&buf)
	if err != nil {
		t.Fatalf("ReadPrelist failed: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(parsed))
	}
	if !parsed[0].Approved || parsed[1].Approved {
		t.Fatalf("approvals did not round-trip: %+v", parsed)
	}
	if parsed[0].Candidate.Record.WatchedDate() != "2018-03-02" {
		t.Fatalf("date did not round-trip: %+v", parsed[0])
	}
}

func TestReadPrelistAcceptsSpreadsheetTruthiness(t *testing.T) {
	input := strings.Join([]string{
		"Title,WatchedDate,Approve",
		"A,2018-01-01,yes",
		"B,2018-01-02,TRUE",
		"C,2018-01-03,0",
		"D,2018-01-04,",
	}, "\n")
	parsed, err := export.ReadPrelist(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPrelist failed: %v", err)
	}
	want := []bool{true, true, false, false}
	for i, d := range parsed {
		if d.Approved != want[i] {
			t.Errorf("row %d approved = %v, want %v", i, d.Approved, want[i])
		}
	}
}

func TestReadPrelistRejectsMissingColumns(t *testing.T) {
	_, err := export.ReadPrelist(strings.NewReader("Title,Date\nA,2018-01-01"))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
}
