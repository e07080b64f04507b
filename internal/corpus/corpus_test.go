package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/lifelog/internal/model"
)

func writeCorpus(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func clockAt(year int, month time.Month, day int) Option {
	return WithClock(func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	})
}

func assertDate(t *testing.T, label string, got time.Time, year int, month time.Month, day int) {
	t.Helper()
	if got.Year() != year || got.Month() != month || got.Day() != day {
		t.Fatalf("%s: expected %04d-%02d-%02d, got %s", label, year, month, day, got.Format("2006-01-02"))
	}
}

func TestEarliestLatestPopulated(t *testing.T) {
	dir := writeCorpus(t, "2022/January.json", "2022/March.json", "2023/October.json")

	earliest, latest, err := NewScanner(dir, clockAt(2023, time.October, 5)).EarliestLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDate(t, "earliest", earliest, 2022, time.January, 1)
	assertDate(t, "latest", latest, 2023, time.October, 31)
}

func TestEarliestLatestClampsToCurrentMonth(t *testing.T) {
	dir := writeCorpus(t, "2022/January.json", "2022/March.json", "2023/October.json")

	earliest, latest, err := NewScanner(dir, clockAt(2024, time.February, 10)).EarliestLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDate(t, "earliest", earliest, 2022, time.January, 1)
	assertDate(t, "latest", latest, 2024, time.February, 29)
}

func TestEarliestLatestEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	earliest, latest, err := NewScanner(dir, clockAt(2023, time.April, 18)).EarliestLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDate(t, "earliest", earliest, 2023, time.April, 1)
	assertDate(t, "latest", latest, 2023, time.April, 30)
}

func TestEarliestLatestDataAfterToday(t *testing.T) {
	dir := writeCorpus(t, "2025/December.json")
	earliest, latest, err := NewScanner(dir, clockAt(2025, time.June, 1)).EarliestLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDate(t, "earliest", earliest, 2025, time.June, 1)
	assertDate(t, "latest", latest, 2025, time.December, 31)
}

func TestEarliestLatestSkipsEmptyYear(t *testing.T) {
	dir := writeCorpus(t, "2021/July.json")
	if err := os.MkdirAll(filepath.Join(dir, "2019"), 0o755); err != nil {
		t.Fatal(err)
	}
	earliest, _, err := NewScanner(dir, clockAt(2022, time.January, 1)).EarliestLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDate(t, "earliest", earliest, 2021, time.July, 1)
}

func TestEarliestLatestIgnoresStrayFiles(t *testing.T) {
	dir := writeCorpus(t, "2022/May.json", "2022/.May-123.tmp", "config.toml")
	first, last, err := NewScanner(dir, clockAt(2022, time.May, 3)).Bounds()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.Key{Month: model.May, Year: 2022}
	if first != want || last != want {
		t.Fatalf("expected %s..%s, got %s..%s", want, want, first, last)
	}
}

func TestEarliestLatestErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, _, err := NewScanner(missing).EarliestLatest(); !errors.Is(err, ErrCorpusUnreadable) {
		t.Fatalf("expected ErrCorpusUnreadable, got %v", err)
	}

	badYear := writeCorpus(t, "2022/May.json", "backup/May.json")
	if _, _, err := NewScanner(badYear).EarliestLatest(); !errors.Is(err, ErrCorruptCorpus) {
		t.Fatalf("expected ErrCorruptCorpus, got %v", err)
	}

	badMonth := writeCorpus(t, "2022/may.json")
	_, _, err := NewScanner(badMonth, clockAt(2023, time.January, 1)).EarliestLatest()
	if !errors.Is(err, ErrCorruptCorpus) || !errors.Is(err, model.ErrInvalidMonthName) {
		t.Fatalf("expected ErrCorruptCorpus wrapping ErrInvalidMonthName, got %v", err)
	}
}

func TestEarliestLatestRejectsPaddedYear(t *testing.T) {
	for _, name := range []string{"02022", "+2022"} {
		dir := writeCorpus(t, name+"/May.json")
		_, _, err := NewScanner(dir, clockAt(2023, time.October, 1)).EarliestLatest()
		if !errors.Is(err, ErrCorruptCorpus) {
			t.Fatalf("%s: expected ErrCorruptCorpus, got %v", name, err)
		}
		if errors.Is(err, ErrCorpusUnreadable) {
			t.Fatalf("%s: expected no unreadable error, got %v", name, err)
		}
	}
}
