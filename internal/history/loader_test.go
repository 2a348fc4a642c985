package history_test

import (
	"strings"
	"testing"
	"time"

	"reelsift/internal/history"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLoadParsesRowsInOrder(t *testing.T) {
	input := strings.Join([]string{
		"Title,Date",
		`"Friends: The One Where Nobody's Ready","03/01/18"`,
		`Inception,03/02/18`,
	}, "\n")

	result, err := history.Load(strings.NewReader(input), "01/02/06", history.Window{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	if result.Records[0].Title != "Friends: The One Where Nobody's Ready" {
		t.Fatalf("unexpected first title: %q", result.Records[0].Title)
	}
	if got := result.Records[1].WatchedDate(); got != "2018-03-02" {
		t.Fatalf("unexpected watched date: %q", got)
	}
}

func TestLoadCountsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"Title,Date",
		"Inception,03/02/18",
		"No Date At All,not-a-date",
		",03/05/18",
		"Arrival,03/06/18",
	}, "\n")

	result, err := history.Load(strings.NewReader(input), "01/02/06", history.Window{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.Malformed != 2 {
		t.Fatalf("expected 2 malformed rows, got %d", result.Malformed)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 good records, got %d", len(result.Records))
	}
}

func TestLoadRequiresTitleAndDateColumns(t *testing.T) {
	_, err := history.Load(strings.NewReader("Name,When\nInception,03/02/18"), "01/02/06", history.Window{})
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestLoadNormalizesTitleWhitespace(t *testing.T) {
	input := "Title,Date\n  The   Crown ,03/02/18"
	result, err := history.Load(strings.NewReader(input), "01/02/06", history.Window{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.Records[0].Title != "The Crown" {
		t.Fatalf("expected normalized title, got %q", result.Records[0].Title)
	}
}

func TestWindowBoundsAreInclusive(t *testing.T) {
	window := history.Window{Start: day("2018-01-01"), End: day("2018-12-31")}

	cases := []struct {
		date string
		want bool
	}{
		{"2018-01-01", true},
		{"2018-12-31", true},
		{"2017-12-31", false},
		{"2019-01-01", false},
		{"2018-06-15", true},
	}
	for _, tc := range cases {
		if got := window.Contains(day(tc.date)); got != tc.want {
			t.Errorf("Contains(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestLoadAppliesWindow(t *testing.T) {
	input := strings.Join([]string{
		"Title,Date",
		"Too Early,12/31/17",
		"On Start,01/01/18",
		"On End,12/31/18",
		"Too Late,01/01/19",
	}, "\n")
	window := history.Window{Start: day("2018-01-01"), End: day("2018-12-31")}

	result, err := history.Load(strings.NewReader(input), "01/02/06", window)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records in window, got %d", len(result.Records))
	}
	if result.OutOfWindow != 2 {
		t.Fatalf("expected 2 out-of-window rows, got %d", result.OutOfWindow)
	}
	if result.Records[0].Title != "On Start" || result.Records[1].Title != "On End" {
		t.Fatalf("unexpected records: %+v", result.Records)
	}
}
