package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/lifelog/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	barChar             = "█"
	unrecordedLabel     = "no data"
	minBarWidth         = 10
	maxBarWidth         = 60
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var bucketColors = map[model.Rating]string{
	model.RatingAwesome:  "\x1b[32m",
	model.RatingGood:     "\x1b[36m",
	model.RatingOkay:     "\x1b[33m",
	model.RatingBad:      "\x1b[35m",
	model.RatingHorrible: "\x1b[31m",
}

const unrecordedColor = "\x1b[90m"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderHistogram prints one bar per rating bucket plus the unrecorded days.
// A width of zero sizes the bars to the terminal.
func RenderHistogram(w io.Writer, title string, s model.Statistics, width int, forceColor bool) error {
	useColor := shouldUseColor(w, forceColor)
	if width <= 0 {
		width = terminalWidth()
	}

	labelWidth := runewidth.StringWidth(unrecordedLabel)
	for _, r := range model.Ratings {
		if lw := runewidth.StringWidth(r.Label()); lw > labelWidth {
			labelWidth = lw
		}
	}
	maxCount := s.Unrecorded
	for _, r := range model.Ratings {
		if c := s.Count(r); c > maxCount {
			maxCount = c
		}
	}
	barWidth := BarWidthFor(width, labelWidth, len(fmt.Sprint(maxCount)))

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, r := range model.Ratings {
		line := histogramLine(r.Label(), s.Count(r), maxCount, labelWidth, barWidth, bucketColors[r], useColor)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	line := histogramLine(unrecordedLabel, s.Unrecorded, maxCount, labelWidth, barWidth, unrecordedColor, useColor)
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	return nil
}

func histogramLine(label string, count, maxCount, labelWidth, barWidth int, color string, useColor bool) string {
	n := 0
	if maxCount > 0 {
		n = int(math.Round(float64(count) / float64(maxCount) * float64(barWidth)))
	}
	if count > 0 && n == 0 {
		n = 1
	}
	bar := strings.Repeat(barChar, n)
	if useColor && bar != "" {
		bar = color + bar + colorReset
	}
	return padCell(label, labelWidth, false) + " │" + bar + " " + fmt.Sprint(count)
}

// RenderSummary prints totals for a report.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Months) == 0 {
		_, err := fmt.Fprintln(w, "No entries found.")
		return err
	}
	total := report.Total
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Months: %d\n", len(report.Months)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Recorded days: %d of %d\n", total.Recorded(), total.Total()); err != nil {
		return err
	}
	if mean, ok := total.Mean(); ok {
		if _, err := fmt.Fprintf(w, "Average rating: %+.2f\n", mean); err != nil {
			return err
		}
	}
	if means := report.MonthlyMeans(); len(means) > 1 {
		if _, err := fmt.Fprintf(w, "Trend: %s\n", Sparkline(means)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderMonthTable prints one row of tallies per month.
func RenderMonthTable(w io.Writer, months []model.MonthSummary) error {
	if len(months) == 0 {
		_, err := fmt.Fprintln(w, "No months found.")
		return err
	}
	headers, rows := MonthTableData(months)
	for _, line := range monthTableLines(headers, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// MonthTableData returns the headers and cells of the per-month table.
func MonthTableData(months []model.MonthSummary) ([]string, [][]string) {
	headers := []string{"Month", "+2", "+1", "0", "-1", "-2", "None", "Avg"}
	rows := make([][]string, 0, len(months))
	for _, m := range months {
		avg := "-"
		if mean, ok := m.Stats.Mean(); ok {
			avg = fmt.Sprintf("%+.2f", mean)
		}
		rows = append(rows, []string{
			m.Key.String(),
			fmt.Sprint(m.Stats.Awesome),
			fmt.Sprint(m.Stats.Good),
			fmt.Sprint(m.Stats.Okay),
			fmt.Sprint(m.Stats.Bad),
			fmt.Sprint(m.Stats.Horrible),
			fmt.Sprint(m.Stats.Unrecorded),
			avg,
		})
	}
	return headers, rows
}

// BarWidthFor computes the longest bar that fits within totalWidth.
func BarWidthFor(totalWidth, labelWidth, countWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	// label + " │" + bar + " " + count
	barWidth := totalWidth - labelWidth - 2 - 1 - countWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	return barWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
