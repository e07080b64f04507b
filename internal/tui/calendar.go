package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lifelog/internal/model"
)

const calendarCellWidth = 3

// calendarGrid lays out the days of a month in weeks starting on weekStart.
// Cells outside the month are zero.
func calendarGrid(key model.Key, weekStart time.Weekday) [][]int {
	first := time.Date(key.Year, time.Month(key.Month), 1, 0, 0, 0, 0, time.UTC).Weekday()
	offset := (int(first) - int(weekStart) + 7) % 7
	days := key.Days()

	var weeks [][]int
	week := make([]int, 7)
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func weekdayHeader(weekStart time.Weekday) string {
	names := make([]string, 7)
	for i := range names {
		d := time.Weekday((int(weekStart) + i) % 7)
		names[i] = fmt.Sprintf("%*s", calendarCellWidth, d.String()[:2])
	}
	return strings.Join(names, "")
}

// renderCalendar draws the month with recorded days colored by rating, the
// selected day highlighted and today underlined.
func renderCalendar(log *model.MonthLog, selected int, today time.Time, weekStart time.Weekday) string {
	key := log.Key()
	isCurrentMonth := today.Year() == key.Year && model.Month(today.Month()) == key.Month

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s %d", key.Month, key.Year)),
		mutedStyle.Render(weekdayHeader(weekStart)),
	}
	for _, week := range calendarGrid(key, weekStart) {
		var b strings.Builder
		for _, day := range week {
			if day == 0 {
				b.WriteString(strings.Repeat(" ", calendarCellWidth))
				continue
			}
			style := mutedStyle
			if entry, err := log.Entry(day); err == nil {
				if rating, ok := entry.Rating(); ok {
					style = ratingStyle(rating)
				}
			}
			if isCurrentMonth && day == today.Day() {
				style = style.Underline(true)
			}
			if day == selected {
				style = style.Reverse(true)
			}
			b.WriteString(" ")
			b.WriteString(style.Render(fmt.Sprintf("%2d", day)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func ratingStyle(r model.Rating) lipgloss.Style {
	if color, ok := ratingColors[r]; ok {
		return lipgloss.NewStyle().Foreground(color)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
}
