package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LoadResult carries the filtered records plus counts for rows that never made
// it into the pipeline.
type LoadResult struct {
	Records []Record
	// Malformed counts rows that could not be parsed (bad field count,
	// unparseable date, empty title). They are skipped, never fatal.
	Malformed int
	// OutOfWindow counts well-formed rows excluded by the date window.
	OutOfWindow int
}

// ErrMissingColumns indicates the input header lacks Title or Date.
var ErrMissingColumns = errors.New("input must have Title and Date columns")

// Load parses a Title,Date viewing-history export. dateLayout is the Go
// reference layout for the Date column. Rows are returned in input order.
func Load(r io.Reader, dateLayout string, window Window) (LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return LoadResult{}, ErrMissingColumns
		}
		return LoadResult{}, fmt.Errorf("read header: %w", err)
	}

	titleIdx, dateIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "Title":
			titleIdx = i
		case "Date":
			dateIdx = i
		}
	}
	if titleIdx < 0 || dateIdx < 0 {
		return LoadResult{}, fmt.Errorf("%w, found: %v", ErrMissingColumns, header)
	}

	var result LoadResult
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A row the CSV reader itself rejects is a malformed record,
			// not a reason to abandon the run.
			if errors.As(err, new(*csv.ParseError)) {
				result.Malformed++
				continue
			}
			return result, fmt.Errorf("read row: %w", err)
		}
		if titleIdx >= len(row) || dateIdx >= len(row) {
			result.Malformed++
			continue
		}

		title := NormalizeTitle(row[titleIdx])
		if title == "" {
			result.Malformed++
			continue
		}
		watched, err := time.Parse(dateLayout, strings.TrimSpace(row[dateIdx]))
		if err != nil {
			result.Malformed++
			continue
		}
		if !window.Contains(watched) {
			result.OutOfWindow++
			continue
		}
		result.Records = append(result.Records, Record{Title: title, WatchedOn: watched})
	}
	return result, nil
}

// LoadFile opens path and delegates to Load.
func LoadFile(path, dateLayout string, window Window) (LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open history: %w", err)
	}
	defer file.Close()
	return Load(file, dateLayout, window)
}
