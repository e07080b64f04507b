// Package model defines the journal data structures shared by the store, the
// scanner and the user interfaces.
package model

import "time"

// Config defines rendering options for the journal UI.
type Config struct {
	DataDir   string
	WeekStart time.Weekday
	EmptyArt  bool
	Color     bool
}

// StatsConfig selects the months covered by a stats report.
type StatsConfig struct {
	Month *Key
	All   bool
	Width int
	Color bool
}

// MonthSummary is the tally of one stored month.
type MonthSummary struct {
	Key   Key
	Stats Statistics
}
