// Package stats contains mood statistics reports and their text rendering.
package stats

import (
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/lifelog/internal/journal"
	"github.com/verte-zerg/lifelog/internal/model"
)

// Report contains the per-month tallies selected by a StatsConfig.
type Report struct {
	Months []model.MonthSummary
	Total  model.Statistics
}

const loadWorkers = 4

// BuildReport loads the selected months and tallies them. Without a month or
// the All flag it covers the current month.
func BuildReport(st *journal.Store, cfg model.StatsConfig) (Report, error) {
	var keys []model.Key
	switch {
	case cfg.All:
		stored, err := st.Months()
		if err != nil {
			return Report{}, err
		}
		keys = stored
	case cfg.Month != nil:
		keys = []model.Key{*cfg.Month}
	default:
		keys = []model.Key{journal.KeyOf(st.Now())}
	}

	summaries := make([]model.MonthSummary, len(keys))
	var g errgroup.Group
	g.SetLimit(loadWorkers)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			log, err := st.LoadMonth(key)
			if err != nil {
				return err
			}
			summaries[i] = model.MonthSummary{Key: key, Stats: log.Statistics()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Months: summaries}
	for _, summary := range summaries {
		report.Total.Add(summary.Stats)
	}
	return report, nil
}

// Title names the period the report covers.
func (r Report) Title() string {
	switch len(r.Months) {
	case 0:
		return "No months"
	case 1:
		return r.Months[0].Key.String()
	default:
		return r.Months[0].Key.String() + " - " + r.Months[len(r.Months)-1].Key.String()
	}
}

// MonthlyMeans returns the mean rating of each month that has recorded days.
func (r Report) MonthlyMeans() []float64 {
	means := make([]float64, 0, len(r.Months))
	for _, m := range r.Months {
		if mean, ok := m.Stats.Mean(); ok {
			means = append(means, mean)
		}
	}
	return means
}
