package model

import (
	"fmt"
)

// MonthLog holds one entry per day of a calendar month.
type MonthLog struct {
	Month   Month   `json:"month"`
	Year    int     `json:"year"`
	Entries []Entry `json:"entries"`
}

// NewMonthLog builds an empty MonthLog from a month name and a year string.
func NewMonthLog(month, year string) (*MonthLog, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}
	y, err := ParseYear(year)
	if err != nil {
		return nil, err
	}
	return NewForKey(Key{Month: m, Year: y})
}

// NewForKey builds an empty MonthLog sized to the keyed month.
func NewForKey(key Key) (*MonthLog, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return &MonthLog{
		Month:   key.Month,
		Year:    key.Year,
		Entries: make([]Entry, key.Days()),
	}, nil
}

// Key returns the identifying month/year pair.
func (l *MonthLog) Key() Key {
	return Key{Month: l.Month, Year: l.Year}
}

// Days returns the number of day slots.
func (l *MonthLog) Days() int {
	return len(l.Entries)
}

// Validate checks the key and that there is exactly one entry per day.
func (l *MonthLog) Validate() error {
	key := l.Key()
	if err := key.Validate(); err != nil {
		return err
	}
	if len(l.Entries) != key.Days() {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrCorruptData, key, len(l.Entries), key.Days())
	}
	return nil
}

// Clone returns a copy whose entries can be changed without touching l.
func (l *MonthLog) Clone() *MonthLog {
	c := *l
	c.Entries = append([]Entry(nil), l.Entries...)
	return &c
}

// Entry returns the entry for a 1-indexed day.
func (l *MonthLog) Entry(day int) (Entry, error) {
	if err := l.checkDay(day); err != nil {
		return Entry{}, err
	}
	return l.Entries[day-1], nil
}

// Update records rating and text for day, replacing any previous entry.
func (l *MonthLog) Update(day int, rating Rating, text string) error {
	if err := l.checkDay(day); err != nil {
		return err
	}
	l.Entries[day-1] = Recorded(rating, text)
	return nil
}

// Delete resets day to an unrecorded entry.
func (l *MonthLog) Delete(day int) error {
	if err := l.checkDay(day); err != nil {
		return err
	}
	l.Entries[day-1] = Unrecorded()
	return nil
}

// Statistics tallies the month's entries by rating.
func (l *MonthLog) Statistics() Statistics {
	var s Statistics
	for _, e := range l.Entries {
		s.add(e)
	}
	return s
}

func (l *MonthLog) checkDay(day int) error {
	if day < 1 || day > len(l.Entries) {
		return fmt.Errorf("%w: day %d of %s (1-%d)", ErrDayOutOfRange, day, l.Key(), len(l.Entries))
	}
	return nil
}
