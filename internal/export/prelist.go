package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"reelsift/internal/history"
	"reelsift/internal/review"
)

// ErrPrelistColumns indicates an edited prelist lacks a required column.
var ErrPrelistColumns = errors.New("prelist must contain Title, WatchedDate, and Approve columns")

// truthy matches the approval markers operators actually type into
// spreadsheets.
func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// ReadPrelist parses an operator-edited prelist review CSV back into film
// decisions, so the import file can be rebuilt without re-running the
// interactive session. Rows with an unparseable WatchedDate are skipped.
func ReadPrelist(r io.Reader) ([]review.FilmDecision, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrPrelistColumns
		}
		return nil, fmt.Errorf("read prelist header: %w", err)
	}

	titleIdx, dateIdx, approveIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "Title":
			titleIdx = i
		case "WatchedDate":
			dateIdx = i
		case "Approve":
			approveIdx = i
		}
	}
	if titleIdx < 0 || dateIdx < 0 || approveIdx < 0 {
		return nil, fmt.Errorf("%w, found: %v", ErrPrelistColumns, header)
	}

	var decisions []review.FilmDecision
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read prelist row: %w", err)
		}
		if titleIdx >= len(row) || dateIdx >= len(row) || approveIdx >= len(row) {
			continue
		}
		watched, err := time.Parse("2006-01-02", strings.TrimSpace(row[dateIdx]))
		if err != nil {
			continue
		}
		decisions = append(decisions, review.FilmDecision{
			Candidate: review.Candidate{Record: history.Record{
				Title:     history.NormalizeTitle(row[titleIdx]),
				WatchedOn: watched,
			}},
			Approved: truthy(row[approveIdx]),
		})
	}
	return decisions, nil
}

// ReadPrelistFile opens path and delegates to ReadPrelist.
func ReadPrelistFile(path string) ([]review.FilmDecision, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prelist: %w", err)
	}
	defer file.Close()
	return ReadPrelist(file)
}
