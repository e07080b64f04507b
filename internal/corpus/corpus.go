// Package corpus inspects the stored month files to bound the calendar.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/lifelog/internal/journal"
	"github.com/verte-zerg/lifelog/internal/model"
)

var (
	ErrCorpusUnreadable = errors.New("data directory cannot be read")
	ErrCorruptCorpus    = errors.New("corrupt data directory")
)

// Scanner finds the earliest and latest browsable dates in a data directory.
type Scanner struct {
	dir string
	now func() time.Time
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithClock overrides the clock used to find the current month.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

// NewScanner returns a Scanner for the corpus rooted at dir.
func NewScanner(dir string, opts ...Option) *Scanner {
	s := &Scanner{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bounds returns the first and last browsable months. The range always
// includes the current month and every month with a stored file.
func (s *Scanner) Bounds() (first, last model.Key, err error) {
	current := journal.KeyOf(s.now())
	first, last = current, current

	years, err := s.years()
	if err != nil {
		return model.Key{}, model.Key{}, err
	}
	// Empty year directories are skipped; the nearest populated year is used.
	for _, year := range years {
		months, err := s.months(year)
		if err != nil {
			return model.Key{}, model.Key{}, err
		}
		if len(months) == 0 {
			continue
		}
		if k := (model.Key{Month: months[0], Year: year}); k.Before(first) {
			first = k
		}
		break
	}
	for i := len(years) - 1; i >= 0; i-- {
		months, err := s.months(years[i])
		if err != nil {
			return model.Key{}, model.Key{}, err
		}
		if len(months) == 0 {
			continue
		}
		if k := (model.Key{Month: months[len(months)-1], Year: years[i]}); last.Before(k) {
			last = k
		}
		break
	}
	return first, last, nil
}

// EarliestLatest returns the first day of the earliest browsable month and
// the last day of the latest one, at midnight in the clock's location.
func (s *Scanner) EarliestLatest() (earliest, latest time.Time, err error) {
	first, last, err := s.Bounds()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	loc := s.now().Location()
	earliest = time.Date(first.Year, time.Month(first.Month), 1, 0, 0, 0, 0, loc)
	latest = time.Date(last.Year, time.Month(last.Month), last.Days(), 0, 0, 0, 0, loc)
	return earliest, latest, nil
}

func (s *Scanner) years() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorpusUnreadable, s.dir, err)
	}
	years := make([]int, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// Month files live under the canonical year name, so "02022" is not 2022.
		year, err := strconv.Atoi(entry.Name())
		if err != nil || year <= 0 || strconv.Itoa(year) != entry.Name() {
			return nil, fmt.Errorf("%w: %q is not a year", ErrCorruptCorpus, entry.Name())
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

func (s *Scanner) months(year int) ([]model.Month, error) {
	dir := filepath.Join(s.dir, strconv.Itoa(year))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorpusUnreadable, dir, err)
	}
	months := make([]model.Month, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, journal.FileExt) {
			continue
		}
		month, err := model.ParseMonth(strings.TrimSuffix(name, journal.FileExt))
		if err != nil {
			return nil, fmt.Errorf("%w: %d/%s: %w", ErrCorruptCorpus, year, name, err)
		}
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i] < months[j]
	})
	return months, nil
}
