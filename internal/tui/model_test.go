package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"go-match/internal/config"
	"go-match/internal/records"
	"go-match/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return NewGame(cfg, nil, nil).NewModel(rand.New(rand.NewSource(1)), nil, NewStyles(nil), 80, 40)
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func clickAt(m *Model, idx int) {
	x, y := m.Controller().Snapshot().Cards[idx].Position.Center()
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestMenuView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"GO MATCH", "Achievements: 0 / 4", "Spring"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestEnterStartsLevel(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)

	if got := m.Controller().State(); got != state.StatePlaying {
		t.Fatalf("State() = %s, want %s", got, state.StatePlaying)
	}
	view := m.View()
	for _, want := range []string{"Level 1/4", "MATCHED: 0/6", "TIME: 00:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("playing view missing %q", want)
		}
	}
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)

	tests := []struct {
		key  tea.KeyType
		want int
	}{
		{tea.KeyRight, 1},
		{tea.KeyDown, 5},
		{tea.KeyLeft, 4},
		{tea.KeyLeft, 7}, // wraps to the end of the row
		{tea.KeyUp, 3},
		{tea.KeyUp, 11}, // wraps to the last row
	}
	for _, tt := range tests {
		press(m, tt.key)
		if got := m.Cursor(); got != tt.want {
			t.Fatalf("after %s Cursor() = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestCursorIgnoredInMenu(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyRight)
	if m.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", m.Cursor())
	}
}

func TestEnterFlipsCardUnderCursor(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)
	press(m, tea.KeyRight)
	press(m, tea.KeyEnter)

	cards := m.Controller().Snapshot().Cards
	if !cards[1].IsFaceUp() {
		t.Error("card 1 should be face up")
	}
	if cards[0].IsFaceUp() {
		t.Error("card 0 should stay face down")
	}
}

func TestMouseClickFlipsAndMovesCursor(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)
	clickAt(m, 6)

	if m.Cursor() != 6 {
		t.Errorf("Cursor() = %d, want 6", m.Cursor())
	}
	if !m.Controller().Snapshot().Cards[6].IsFaceUp() {
		t.Error("card 6 should be face up")
	}
}

func TestRightClickIgnored(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)
	x, y := m.Controller().Snapshot().Cards[2].Position.Center()
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})

	if m.Controller().Snapshot().Cards[2].IsFaceUp() {
		t.Error("right click should not flip")
	}
}

func winWithMouse(t *testing.T, m *Model) {
	t.Helper()
	byItem := map[string][]int{}
	for i, c := range m.Controller().Snapshot().Cards {
		byItem[c.ItemID] = append(byItem[c.ItemID], i)
	}
	for _, idx := range byItem {
		clickAt(m, idx[0])
		clickAt(m, idx[1])
	}
}

func TestWinShowsLevelComplete(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)
	winWithMouse(t, m)

	if got := m.Controller().State(); got != state.StateLevelComplete {
		t.Fatalf("State() = %s, want %s", got, state.StateLevelComplete)
	}
	view := m.View()
	for _, want := range []string{"complete!", "Spring Awakening", "Achievement unlocked!", "level 2 (Summer)"} {
		if !strings.Contains(view, want) {
			t.Errorf("level complete view missing %q", want)
		}
	}

	press(m, tea.KeyEnter)
	if got := m.Controller().State(); got != state.StatePlaying {
		t.Fatalf("State() = %s, want %s", got, state.StatePlaying)
	}
	if m.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want reset to 0", m.Cursor())
	}
}

func TestTickAdvancesClock(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)

	start := time.Unix(0, 0)
	m.Update(TickMsg(start))
	_, cmd := m.Update(TickMsg(start.Add(2 * time.Second)))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := m.Controller().Session().Elapsed; got != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", got)
	}
}

func TestTimeoutShowsGameOver(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)

	start := time.Unix(0, 0)
	m.Update(TickMsg(start))
	m.Update(TickMsg(start.Add(31 * time.Second)))

	if got := m.Controller().State(); got != state.StateGameOver {
		t.Fatalf("State() = %s, want %s", got, state.StateGameOver)
	}
	if !strings.Contains(m.View(), "Time's up!") {
		t.Error("game over view missing message")
	}
}

func TestWindowResizeRelayouts(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)
	before := m.Controller().Snapshot().Cards[11].Position

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	after := m.Controller().Snapshot().Cards[11].Position
	if after == before {
		t.Errorf("card position unchanged after resize: %+v", after)
	}
	if after.Bottom() > 50-helpHeight {
		t.Errorf("card bottom %d outside the draw area", after.Bottom())
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)
	if !isQuit(typeRune(m, 'q')) {
		t.Error("q should quit")
	}
	if !m.Controller().Quitting() {
		t.Error("controller should be quitting")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestEscape(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyEnter)

	if isQuit(press(m, tea.KeyEsc)) {
		t.Fatal("esc while playing should not quit")
	}
	if got := m.Controller().State(); got != state.StateMenu {
		t.Fatalf("State() = %s, want %s", got, state.StateMenu)
	}
	if !isQuit(press(m, tea.KeyEsc)) {
		t.Error("esc in the menu should quit")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	typeRune(m, '?')
	if !m.help.ShowAll {
		t.Error("? should show the full help")
	}
}

func TestRenderRecords(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	entries := []records.Entry{
		{LevelID: 1, Outcome: records.OutcomeWon, Elapsed: 20 * time.Second, Attempts: 8, Timestamp: "2026-01-02T15:04:05Z"},
		{LevelID: 1, Outcome: records.OutcomeWon, Elapsed: 12 * time.Second, Attempts: 6},
		{LevelID: 1, Outcome: records.OutcomeTimedOut, Elapsed: 30 * time.Second},
	}

	out := RenderRecords(cfg, entries, 5, NewStyles(nil))
	for _, want := range []string{"Level 1", "3 plays, 2 wins", "00:12", "00:20", "no wins yet"} {
		if !strings.Contains(out, want) {
			t.Errorf("records output missing %q", want)
		}
	}
	if strings.Index(out, "00:12") > strings.Index(out, "00:20") {
		t.Error("fastest win should be listed first")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{1500 * time.Millisecond, "00:02"},
		{75 * time.Second, "01:15"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
