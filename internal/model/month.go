package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Month is a calendar month, January = 1.
type Month int

// Months of the Gregorian calendar.
const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ParseMonth maps a capitalized English month name to a Month.
func ParseMonth(name string) (Month, error) {
	for i, n := range monthNames {
		if n == name {
			return Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonthName, name)
}

// Valid reports whether m is one of the twelve months.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

func (m Month) String() string {
	if !m.Valid() {
		return "Month(" + strconv.Itoa(int(m)) + ")"
	}
	return monthNames[m-1]
}

// Days returns the number of days in m for the given year.
func (m Month) Days(year int) int {
	if !m.Valid() {
		return 0
	}
	if m == February && IsLeapYear(year) {
		return 29
	}
	return monthDays[m-1]
}

// MarshalText encodes the month as its name.
func (m Month) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonthName, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a month name.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// IsLeapYear applies the Gregorian leap year rules.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseYear parses a positive four-digit style year.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, s)
	}
	return year, nil
}

// Key identifies a MonthLog.
type Key struct {
	Month Month
	Year  int
}

// ParseKey parses the "October/2023" form.
func ParseKey(s string) (Key, error) {
	monthPart, yearPart, ok := strings.Cut(s, "/")
	if !ok {
		return Key{}, fmt.Errorf("%w: missing '/' in %q", ErrInvalidMonthName, s)
	}
	month, err := ParseMonth(monthPart)
	if err != nil {
		return Key{}, err
	}
	year, err := ParseYear(yearPart)
	if err != nil {
		return Key{}, err
	}
	return Key{Month: month, Year: year}, nil
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Month, k.Year)
}

// Validate checks that the key names a real month and a positive year.
func (k Key) Validate() error {
	if !k.Month.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMonthName, int(k.Month))
	}
	if k.Year <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, k.Year)
	}
	return nil
}

// Days returns the number of days in the keyed month.
func (k Key) Days() int {
	return k.Month.Days(k.Year)
}

// Before reports whether k is chronologically earlier than other.
func (k Key) Before(other Key) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Next returns the following month.
func (k Key) Next() Key {
	if k.Month == December {
		return Key{Month: January, Year: k.Year + 1}
	}
	return Key{Month: k.Month + 1, Year: k.Year}
}

// Prev returns the preceding month.
func (k Key) Prev() Key {
	if k.Month == January {
		return Key{Month: December, Year: k.Year - 1}
	}
	return Key{Month: k.Month - 1, Year: k.Year}
}
