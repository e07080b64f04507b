package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lifelog/internal/corpus"
	"github.com/verte-zerg/lifelog/internal/journal"
	"github.com/verte-zerg/lifelog/internal/model"
)

func newTestModel(t *testing.T, now time.Time) (*Model, *journal.Store) {
	t.Helper()
	dir := t.TempDir()
	clock := func() time.Time { return now }
	st := journal.New(dir, journal.WithClock(clock))
	sc := corpus.NewScanner(dir, corpus.WithClock(clock))
	return NewModel(model.Config{DataDir: dir, WeekStart: time.Sunday}, st, sc), st
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestNewEntryFlowSavesToday(t *testing.T) {
	now := time.Date(2023, time.October, 14, 21, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, now)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenCompose {
		t.Fatalf("expected compose screen, got %d", m.screen)
	}
	press(m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("quiet day")},
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)
	if m.screen != screenRate {
		t.Fatalf("expected rate screen, got %d", m.screen)
	}
	if m.draft != "quiet day" {
		t.Fatalf("unexpected draft: %q", m.draft)
	}
	press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMessage || m.message != "entry saved!" {
		t.Fatalf("expected saved message, got screen %d %q (err %q)", m.screen, m.message, m.errMsg)
	}

	log, err := st.Load("October/2023")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	entry, err := log.Entry(14)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	rating, ok := entry.Rating()
	if !ok || rating != model.RatingGood || entry.Text() != "quiet day" {
		t.Fatalf("unexpected saved entry: %v", entry)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu {
		t.Fatalf("expected menu after message, got %d", m.screen)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMessage || m.message != "you already have an entry for today." {
		t.Fatalf("expected duplicate entry message, got screen %d %q", m.screen, m.message)
	}
}

func TestComposeEscapeDiscards(t *testing.T) {
	now := time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, now)

	press(m,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("draft")},
		tea.KeyMsg{Type: tea.KeyEsc},
	)
	if m.screen != screenMenu {
		t.Fatalf("expected menu, got %d", m.screen)
	}
	months, err := st.Months()
	if err != nil {
		t.Fatalf("months: %v", err)
	}
	if len(months) != 0 {
		t.Fatalf("expected nothing saved, got %v", months)
	}
}

func TestBrowseStaysWithinBounds(t *testing.T) {
	now := time.Date(2023, time.October, 2, 12, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, now)

	log, err := model.NewMonthLog("September", "2023")
	if err != nil {
		t.Fatalf("new log: %v", err)
	}
	if err := log.Update(30, model.RatingBad, "rainy"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := st.Save(log); err != nil {
		t.Fatalf("save: %v", err)
	}

	m.menuIndex = menuEntries
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenBrowse {
		t.Fatalf("expected browse screen, got %d (err %q)", m.screen, m.errMsg)
	}
	if m.log.Key().String() != "October/2023" || m.day != 2 {
		t.Fatalf("expected to start on today, got %s day %d", m.log.Key(), m.day)
	}

	press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.log.Key().String() != "September/2023" || m.day != 30 {
		t.Fatalf("expected September 30, got %s day %d", m.log.Key(), m.day)
	}
	if !strings.Contains(m.entryText(), "rainy") {
		t.Fatalf("expected entry text in view, got %q", m.entryText())
	}

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	if m.log.Key().String() != "September/2023" {
		t.Fatalf("expected to stay on the earliest month, got %s", m.log.Key())
	}

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	if m.log.Key().String() != "October/2023" {
		t.Fatalf("expected to stop at the latest month, got %s", m.log.Key())
	}
}

func TestBrowseDeleteEntry(t *testing.T) {
	now := time.Date(2023, time.October, 5, 12, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, now)

	log, err := st.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if err := log.Update(5, model.RatingAwesome, "shipped it"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := st.Save(log); err != nil {
		t.Fatalf("save: %v", err)
	}

	m.menuIndex = menuEntries
	press(m,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")},
	)
	if m.screen != screenConfirmDelete {
		t.Fatalf("expected delete confirmation, got %d", m.screen)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	reloaded, err := st.Current()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	entry, err := reloaded.Entry(5)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if entry.IsRecorded() {
		t.Fatalf("expected entry to be deleted, got %v", entry)
	}
}

func TestViewRendersMenu(t *testing.T) {
	m, _ := newTestModel(t, time.Date(2023, time.October, 5, 12, 0, 0, 0, time.UTC))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	out := m.View()
	if !strings.Contains(out, welcomeText) || !strings.Contains(out, "new entry") {
		t.Fatalf("expected menu in view, got %q", out)
	}
}

func TestGotoMonth(t *testing.T) {
	now := time.Date(2023, time.October, 2, 12, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, now)

	log, err := model.NewMonthLog("June", "2023")
	if err != nil {
		t.Fatalf("new log: %v", err)
	}
	if err := log.Update(3, model.RatingGood, "picnic"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := st.Save(log); err != nil {
		t.Fatalf("save: %v", err)
	}

	m.menuIndex = menuEntries
	press(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if m.screen != screenGoto {
		t.Fatalf("expected go-to prompt, got %d", m.screen)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("May/2023")}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGoto || m.errMsg == "" {
		t.Fatalf("expected out-of-range error, got screen %d %q", m.screen, m.errMsg)
	}

	m.gotoInput.SetValue("June/2023")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenBrowse || m.log.Key().String() != "June/2023" || m.day != 2 {
		t.Fatalf("expected June 2 2023, got screen %d %s day %d", m.screen, m.log.Key(), m.day)
	}
}

func TestFailedSaveLeavesMonthUnchanged(t *testing.T) {
	now := time.Date(2023, time.October, 14, 21, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, now)

	press(m,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("lost")},
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)
	// A file where the year directory belongs makes the save fail.
	if err := os.WriteFile(filepath.Join(st.Dir(), "2023"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.errMsg == "" || m.screen != screenRate {
		t.Fatalf("expected save error on the rate screen, got screen %d %q", m.screen, m.errMsg)
	}
	entry, err := m.log.Entry(14)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if entry.IsRecorded() {
		t.Fatalf("expected unsaved entry to stay out of the month, got %v", entry)
	}
}

func TestFailedDeleteKeepsEntry(t *testing.T) {
	now := time.Date(2023, time.October, 5, 12, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, now)

	log, err := st.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if err := log.Update(5, model.RatingAwesome, "shipped it"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := st.Save(log); err != nil {
		t.Fatalf("save: %v", err)
	}

	m.menuIndex = menuEntries
	press(m,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")},
	)
	// A directory in place of the month file makes the rename fail.
	path := st.Path(log.Key())
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.errMsg == "" || m.screen != screenBrowse {
		t.Fatalf("expected delete error on the browse screen, got screen %d %q", m.screen, m.errMsg)
	}
	entry, err := m.log.Entry(5)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if !entry.IsRecorded() || entry.Text() != "shipped it" {
		t.Fatalf("expected entry to stay recorded, got %v", entry)
	}
}
