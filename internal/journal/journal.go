// Package journal persists MonthLogs as one JSON file per month.
//
// The corpus layout is <dir>/<year>/<Month>.json. The store keeps no month
// state between calls: every operation reads or writes the file it needs.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/lifelog/internal/model"
)

// FileExt is the extension of month files.
const FileExt = ".json"

// Store reads and writes month files under a data directory.
type Store struct {
	dir string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for the current month and today.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a Store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// EnsureDir creates the data directory if it is missing.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Path returns the canonical file path for key.
func (s *Store) Path(key model.Key) string {
	return filepath.Join(s.dir, strconv.Itoa(key.Year), key.Month.String()+FileExt)
}

// Load returns the MonthLog for a "October/2023" style key.
func (s *Store) Load(key string) (*model.MonthLog, error) {
	k, err := model.ParseKey(key)
	if err != nil {
		return nil, err
	}
	return s.LoadMonth(k)
}

// LoadMonth reads the month file for key, or returns an empty MonthLog when
// there is none. A file that cannot be decoded is reported as corrupt and left
// untouched.
func (s *Store) LoadMonth(key model.Key) (*model.MonthLog, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewForKey(key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var log model.MonthLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptData, path, err)
	}
	if log.Key() != key {
		return nil, fmt.Errorf("%w: %s holds %s", model.ErrCorruptData, path, log.Key())
	}
	if err := log.Validate(); err != nil {
		if errors.Is(err, model.ErrCorruptData) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptData, path, err)
	}
	return &log, nil
}

// Current loads the MonthLog for the current calendar month.
func (s *Store) Current() (*model.MonthLog, error) {
	return s.LoadMonth(KeyOf(s.now()))
}

// TodaysEntry returns the entry for today's day of month in log.
func (s *Store) TodaysEntry(log *model.MonthLog) (model.Entry, error) {
	return log.Entry(s.now().Day())
}

// Save writes log to its canonical path, replacing any previous file.
func (s *Store) Save(log *model.MonthLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	path := s.Path(log.Key())
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create year directory: %w", err)
	}
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", log.Key(), err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+log.Month.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp month file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write month file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close month file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Months lists the stored month files in chronological order. Directories and
// files that do not follow the corpus layout are skipped.
func (s *Store) Months() ([]model.Key, error) {
	years, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	var keys []model.Key
	for _, yearEntry := range years {
		if !yearEntry.IsDir() {
			continue
		}
		year, err := model.ParseYear(yearEntry.Name())
		if err != nil || strconv.Itoa(year) != yearEntry.Name() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.dir, yearEntry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read year directory: %w", err)
		}
		for _, f := range files {
			month, ok := MonthFromFileName(f.Name())
			if !ok || f.IsDir() {
				continue
			}
			keys = append(keys, model.Key{Month: month, Year: year})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})
	return keys, nil
}

// MonthFromFileName maps "October.json" to October.
func MonthFromFileName(name string) (model.Month, bool) {
	if !strings.HasSuffix(name, FileExt) {
		return 0, false
	}
	month, err := model.ParseMonth(strings.TrimSuffix(name, FileExt))
	if err != nil {
		return 0, false
	}
	return month, true
}

// KeyOf returns the month key containing t.
func KeyOf(t time.Time) model.Key {
	return model.Key{Month: model.Month(t.Month()), Year: t.Year()}
}
