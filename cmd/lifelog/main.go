// Package main provides the CLI entrypoint for lifelog.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lifelog/internal/config"
	"github.com/verte-zerg/lifelog/internal/corpus"
	"github.com/verte-zerg/lifelog/internal/journal"
	"github.com/verte-zerg/lifelog/internal/model"
	"github.com/verte-zerg/lifelog/internal/stats"
	"github.com/verte-zerg/lifelog/internal/store"
	"github.com/verte-zerg/lifelog/internal/tui"
)

const (
	defaultWeekStart = "sunday"
	dateLayout       = "2006-01-02"
)

var (
	dataDir   string
	weekStart string
	emptyArt  bool
	useColor  bool

	writeRating int
	writeText   string
	writeDate   string

	showDate   string
	deleteDate string

	statsMonth string
	statsAll   bool
	statsWidth int

	exportPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lifelog",
		Short:         "A log of your uneventful life",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runJournalCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding the month files")
	rootCmd.PersistentFlags().BoolVar(&useColor, "color", false, "force colored output")
	rootCmd.Flags().StringVar(&weekStart, "week-start", defaultWeekStart, "first day of the calendar week")
	rootCmd.Flags().BoolVar(&emptyArt, "empty-art", true, "show the empty-day art in the calendar")

	rootCmd.AddCommand(newWriteCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newRangeCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadConfig merges the config file into the flag values. Flags set on the
// command line win.
func loadConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &dataDir, fileCfg.Storage.DataDir)
	applyStringConfig(cmd, "week-start", &weekStart, fileCfg.Display.WeekStart)
	applyBoolConfig(cmd, "empty-art", &emptyArt, fileCfg.Display.EmptyArt)
	applyBoolConfig(cmd, "color", &useColor, fileCfg.Display.Color)

	if strings.TrimSpace(dataDir) == "" {
		return model.Config{}, fmt.Errorf("--data-dir must not be empty")
	}
	day, err := config.ParseWeekday(weekStart)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --week-start value: %w", err)
	}
	return model.Config{
		DataDir:   dataDir,
		WeekStart: day,
		EmptyArt:  emptyArt,
		Color:     useColor,
	}, nil
}

func openJournal(cmd *cobra.Command) (model.Config, *journal.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return model.Config{}, nil, err
	}
	st := journal.New(cfg.DataDir)
	if err := st.EnsureDir(); err != nil {
		return model.Config{}, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return cfg, st, nil
}

func runJournalCmd(cmd *cobra.Command, _ []string) error {
	cfg, st, err := openJournal(cmd)
	if err != nil {
		return err
	}
	scanner := corpus.NewScanner(cfg.DataDir)
	if _, _, err := scanner.Bounds(); err != nil {
		return fmt.Errorf("failed to scan journal: %w", err)
	}

	m := tui.NewModel(cfg, st, scanner)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Record an entry",
		Args:  cobra.NoArgs,
		RunE:  runWriteCmd,
	}
	cmd.Flags().IntVar(&writeRating, "rating", 0, "rating from -2 (horrible) to 2 (awesome)")
	cmd.Flags().StringVar(&writeText, "text", "", "entry text")
	cmd.Flags().StringVar(&writeDate, "date", "", "day to record (YYYY-MM-DD, default today)")
	return cmd
}

func runWriteCmd(cmd *cobra.Command, _ []string) error {
	rating := model.Rating(writeRating)
	if writeRating < int(model.RatingHorrible) || writeRating > int(model.RatingAwesome) {
		return fmt.Errorf("--rating must be between -2 and 2")
	}
	if strings.TrimSpace(writeText) == "" {
		return fmt.Errorf("--text must not be empty")
	}
	_, st, err := openJournal(cmd)
	if err != nil {
		return err
	}
	log, day, err := loadDay(st, writeDate)
	if err != nil {
		return err
	}
	if err := log.Update(day, rating, writeText); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if err := st.Save(log); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	logErrf("Saved %d %s %d\n", day, log.Month, log.Year)
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print an entry",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
	cmd.Flags().StringVar(&showDate, "date", "", "day to show (YYYY-MM-DD, default today)")
	return cmd
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	_, st, err := openJournal(cmd)
	if err != nil {
		return err
	}
	log, day, err := loadDay(st, showDate)
	if err != nil {
		return err
	}
	entry, err := log.Entry(day)
	if err != nil {
		return fmt.Errorf("failed to read entry: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%d %s %d\n", day, log.Month, log.Year); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	rating, ok := entry.Rating()
	if !ok {
		if _, err := fmt.Fprintln(out, model.UnrecordedText); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintf(out, "rating: %s\n\n%s\n", strings.TrimSpace(rating.Label()), entry.Text()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Reset an entry to unrecorded",
		Args:  cobra.NoArgs,
		RunE:  runDeleteCmd,
	}
	cmd.Flags().StringVar(&deleteDate, "date", "", "day to delete (YYYY-MM-DD)")
	return cmd
}

func runDeleteCmd(cmd *cobra.Command, _ []string) error {
	if deleteDate == "" {
		return fmt.Errorf("--date is required")
	}
	_, st, err := openJournal(cmd)
	if err != nil {
		return err
	}
	log, day, err := loadDay(st, deleteDate)
	if err != nil {
		return err
	}
	if err := log.Delete(day); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := st.Save(log); err != nil {
		return fmt.Errorf("failed to save month: %w", err)
	}
	logErrf("Deleted %d %s %d\n", day, log.Month, log.Year)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rating statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMonth, "month", "", "month to summarize (e.g. October/2023)")
	cmd.Flags().BoolVar(&statsAll, "all", false, "summarize every stored month")
	cmd.Flags().IntVar(&statsWidth, "width", 0, "output width (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsAll && statsMonth != "" {
		return fmt.Errorf("--month and --all are mutually exclusive")
	}
	if statsWidth < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	cfg, st, err := openJournal(cmd)
	if err != nil {
		return err
	}
	statsCfg := model.StatsConfig{All: statsAll, Width: statsWidth, Color: cfg.Color}
	if statsMonth != "" {
		key, err := model.ParseKey(statsMonth)
		if err != nil {
			return fmt.Errorf("invalid --month value: %w", err)
		}
		statsCfg.Month = &key
	}

	report, err := stats.BuildReport(st, statsCfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if statsCfg.All {
		if err := stats.RenderSummary(out, report); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if len(report.Months) == 0 {
			return nil
		}
	}
	if err := stats.RenderHistogram(out, report.Title(), report.Total, statsCfg.Width, statsCfg.Color); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if statsCfg.All {
		if _, err := fmt.Fprintln(out, ""); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderMonthTable(out, report.Months); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range",
		Short: "Print the earliest and latest browsable dates",
		Args:  cobra.NoArgs,
		RunE:  runRangeCmd,
	}
}

func runRangeCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := openJournal(cmd)
	if err != nil {
		return err
	}
	earliest, latest, err := corpus.NewScanner(cfg.DataDir).EarliestLatest()
	if err != nil {
		return fmt.Errorf("failed to scan journal: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", earliest.Format(dateLayout), latest.Format(dateLayout)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal into a SQLite database",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportPath, "db", config.DefaultExportPath(), "SQLite database path")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	_, st, err := openJournal(cmd)
	if err != nil {
		return err
	}
	db, err := store.Open(exportPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	keys, err := st.Months()
	if err != nil {
		return fmt.Errorf("failed to list months: %w", err)
	}
	ctx := context.Background()
	for _, key := range keys {
		log, err := st.LoadMonth(key)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", key, err)
		}
		if err := db.ReplaceMonth(ctx, log); err != nil {
			return fmt.Errorf("failed to export %s: %w", key, err)
		}
	}
	logErrf("Exported %d months to %s\n", len(keys), exportPath)
	return nil
}

// loadDay resolves a YYYY-MM-DD flag value (empty means today) to its month
// and day of month.
func loadDay(st *journal.Store, value string) (*model.MonthLog, int, error) {
	date := st.Now()
	if value != "" {
		parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid --date value: %w", err)
		}
		date = parsed
	}
	log, err := st.LoadMonth(journal.KeyOf(date))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load month: %w", err)
	}
	return log, date.Day(), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if f := cmd.Flags().Lookup(name); f == nil || f.Changed {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if f := cmd.Flags().Lookup(name); f == nil || f.Changed {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lifelog configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# data-dir = %q

[display]
# week-start = %q     # First day of the calendar week
# empty-art = true           # Show the empty-day art for unrecorded days
# color = false              # Force colored stats output
`,
		config.DefaultDataDir(),
		defaultWeekStart,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
