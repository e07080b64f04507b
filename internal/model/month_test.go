package model

import (
	"errors"
	"testing"
)

func TestParseMonth(t *testing.T) {
	for i, name := range monthNames {
		m, err := ParseMonth(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if int(m) != i+1 || m.String() != name {
			t.Fatalf("%s: got %d/%s", name, int(m), m)
		}
	}
	for _, name := range []string{"", "JANUARY", "january", "Jan", "October.json"} {
		if _, err := ParseMonth(name); !errors.Is(err, ErrInvalidMonthName) {
			t.Fatalf("%q: expected ErrInvalidMonthName, got %v", name, err)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{
		1900: false,
		2000: true,
		2023: false,
		2024: true,
		2100: false,
		2400: true,
	}
	for year, want := range cases {
		if got := IsLeapYear(year); got != want {
			t.Fatalf("%d: expected %v, got %v", year, want, got)
		}
	}
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("October/2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != (Key{Month: October, Year: 2023}) {
		t.Fatalf("unexpected key: %+v", key)
	}
	if key.String() != "October/2023" {
		t.Fatalf("unexpected string: %s", key)
	}
	if _, err := ParseKey("October-2023"); !errors.Is(err, ErrInvalidMonthName) {
		t.Fatalf("expected ErrInvalidMonthName, got %v", err)
	}
	if _, err := ParseKey("October/abc"); !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}

func TestKeyNavigation(t *testing.T) {
	dec := Key{Month: December, Year: 2022}
	if next := dec.Next(); next != (Key{Month: January, Year: 2023}) {
		t.Fatalf("unexpected next: %s", next)
	}
	jan := Key{Month: January, Year: 2023}
	if prev := jan.Prev(); prev != dec {
		t.Fatalf("unexpected prev: %s", prev)
	}
	if !dec.Before(jan) || jan.Before(dec) || jan.Before(jan) {
		t.Fatalf("unexpected ordering")
	}
}
