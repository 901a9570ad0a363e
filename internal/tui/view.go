package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go-match/internal/game"
	"go-match/internal/state"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	snap := m.ctrl.Snapshot()
	if snap.Quitting {
		return ""
	}

	var body string
	switch snap.State {
	case state.StatePlaying:
		body = m.viewPlaying(snap)
	case state.StateLevelComplete:
		body = m.place(m.viewLevelComplete(snap))
	case state.StateGameOver:
		body = m.place(m.viewGameOver(snap))
	case state.StateAllComplete:
		body = m.place(m.viewAllComplete(snap))
	default:
		body = m.place(m.viewMenu(snap))
	}
	return body + "\n" + m.styles.Help.Render(m.help.View(m.keys))
}

func (m *Model) place(content string) string {
	return lipgloss.Place(m.width, max(m.height-helpHeight, 1), lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewMenu(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("GO MATCH · Four Seasons"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d levels: ", snap.LevelCount))
	names := make([]string, 0, len(m.cfg.Levels))
	for _, l := range m.cfg.Levels {
		names = append(names, m.cfg.ThemeName(l.Theme))
	}
	b.WriteString(strings.Join(names, " → "))
	b.WriteString("\n")
	b.WriteString(m.styles.Score.Render(fmt.Sprintf("Achievements: %d / %d", snap.Unlocked, snap.Total)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Bold.Render("Press enter to start, esc to quit"))

	if snap.LastError != nil {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render(errorText(snap.LastError)))
	}
	return m.styles.Box.Render(b.String())
}

func errorText(err error) string {
	var insufficient *game.InsufficientAssetsError
	if errors.As(err, &insufficient) {
		return fmt.Sprintf("Not enough items for %s: %d found, %d needed",
			insufficient.Theme, insufficient.Available, insufficient.Required)
	}
	return "Could not start level: " + err.Error()
}

func (m *Model) viewLevelComplete(snap state.Snapshot) string {
	var b strings.Builder
	title := "Level complete!"
	if snap.Level != nil {
		title = fmt.Sprintf("Level %d (%s) complete!", snap.Level.ID, m.cfg.ThemeName(snap.Level.Theme))
	}
	b.WriteString(m.styles.Green.Render(title))
	b.WriteString("\n\n")

	if s := snap.Session; s != nil {
		b.WriteString(fmt.Sprintf("Time: %s   Attempts: %d   Mistakes: %d\n", formatDuration(s.Elapsed), s.Attempts, s.Mistakes))
	}
	switch {
	case snap.Best == nil:
		b.WriteString(m.styles.Score.Render("First clear of this level!"))
	case snap.NewBest:
		b.WriteString(m.styles.Score.Render(fmt.Sprintf("New best time! Previous best: %s", formatDuration(snap.Best.Elapsed))))
	default:
		b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("Best time: %s", formatDuration(snap.Best.Elapsed))))
	}
	b.WriteString("\n")

	if len(snap.NewlyUnlocked) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Unlock.Render("Achievements unlocked:"))
		for _, r := range snap.NewlyUnlocked {
			b.WriteString(fmt.Sprintf("\n  ★ %s: %s", r.Name, r.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if snap.NextLevel != nil {
		b.WriteString(m.styles.Bold.Render(fmt.Sprintf("Press enter for level %d (%s)", snap.NextLevel.ID, m.cfg.ThemeName(snap.NextLevel.Theme))))
	} else {
		b.WriteString(m.styles.Bold.Render("Press enter to finish"))
	}
	return m.withPopup(snap, m.styles.Box.Render(b.String()))
}

func (m *Model) viewGameOver(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Red.Render("Time's up!"))
	b.WriteString("\n\n")
	if s := snap.Session; s != nil {
		b.WriteString(fmt.Sprintf("Matched %d of %d pairs in %d attempts\n", s.MatchedPairs, s.TotalPairs, s.Attempts))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Bold.Render("Press enter to return to the menu"))
	return m.styles.Box.Render(b.String())
}

func (m *Model) viewAllComplete(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Green.Render("All seasons complete!"))
	b.WriteString("\n\n")
	for _, r := range snap.NewlyUnlocked {
		b.WriteString(m.styles.Unlock.Render(fmt.Sprintf("★ %s: %s", r.Name, r.Description)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, r := range snap.Achievements {
		if r.Unlocked {
			b.WriteString(m.styles.Unlock.Render("★ " + r.Name))
		} else {
			b.WriteString(m.styles.Locked.Render("☆ " + r.Name))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Bold.Render("Press enter to return to the menu"))
	return m.withPopup(snap, m.styles.Box.Render(b.String()))
}

func (m *Model) withPopup(snap state.Snapshot, content string) string {
	if snap.Popup == nil {
		return content
	}
	return lipgloss.JoinVertical(lipgloss.Center, m.popupLine(snap.Popup), "", content)
}

func (m *Model) popupLine(p *state.Popup) string {
	return m.styles.Popup.Render(fmt.Sprintf("Achievement unlocked! %s: %s", p.Record.Name, p.Record.Description))
}

func (m *Model) viewPlaying(snap state.Snapshot) string {
	areaH := max(m.height-helpHeight, 1)
	lines := make([]string, areaH)
	used := make([]bool, areaH)

	for i, l := range m.hudLines(snap) {
		if i < areaH {
			lines[i] = l
			used[i] = true
		}
	}

	m.drawCards(snap, lines, used)

	if s := snap.Session; s != nil && s.Reveal != nil && snap.Level != nil {
		text := m.styles.Reveal.Render(m.cfg.ItemName(snap.Level.Theme, s.Reveal.ItemID))
		y := s.Reveal.Y
		if y >= 0 && y < areaH && !used[y] {
			x := max(s.Reveal.X-lipgloss.Width(text)/2, 0)
			lines[y] = strings.Repeat(" ", x) + text
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) hudLines(snap state.Snapshot) []string {
	s := snap.Session
	if s == nil || snap.Level == nil {
		return nil
	}

	title := m.styles.Title.Render(fmt.Sprintf("Level %d/%d · %s", snap.Level.ID, snap.LevelCount, m.cfg.ThemeName(snap.Level.Theme)))

	var clock string
	if s.TimeLimit > 0 {
		style := m.styles.Score
		if s.Remaining < 10*time.Second {
			style = m.styles.Red
		}
		clock = style.Render("TIME: " + formatDuration(s.Remaining))
	} else {
		clock = m.styles.Score.Render("ELAPSED: " + formatDuration(s.Elapsed))
	}

	stats := m.styles.HUD.Render(fmt.Sprintf("MATCHED: %d/%d | ATTEMPTS: %d | MISTAKES: %d", s.MatchedPairs, s.TotalPairs, s.Attempts, s.Mistakes))

	out := []string{title + "   " + clock, stats}
	if snap.Popup != nil {
		out = append(out, m.popupLine(snap.Popup))
	}
	return out
}

// drawCards writes every card row into lines at the positions the board computed.
func (m *Model) drawCards(snap state.Snapshot, lines []string, used []bool) {
	if len(snap.Cards) == 0 || snap.Session == nil {
		return
	}
	selected := make(map[int]bool, len(snap.Selection))
	for _, i := range snap.Selection {
		selected[i] = true
	}

	rows := make(map[int][]int) // top y -> card indexes, left to right
	var order []int
	for i, c := range snap.Cards {
		y := c.Position.Y
		if _, ok := rows[y]; !ok {
			order = append(order, y)
		}
		rows[y] = append(rows[y], i)
	}

	for _, y := range order {
		idxs := rows[y]
		blocks := make([][]string, len(idxs))
		for j, idx := range idxs {
			blocks[j] = m.renderCard(snap, idx, selected[idx])
		}
		h := snap.Cards[idxs[0]].Position.H
		for dy := 0; dy < h; dy++ {
			ly := y + dy
			if ly < 0 || ly >= len(lines) {
				continue
			}
			var b strings.Builder
			x := 0
			for j, idx := range idxs {
				pos := snap.Cards[idx].Position
				if pos.X > x {
					b.WriteString(strings.Repeat(" ", pos.X-x))
					x = pos.X
				}
				if dy < len(blocks[j]) {
					b.WriteString(blocks[j][dy])
				}
				x += pos.W
			}
			lines[ly] = b.String()
			used[ly] = true
		}
	}
}

func (m *Model) renderCard(snap state.Snapshot, idx int, selected bool) []string {
	c := snap.Cards[idx]
	w, h := c.Position.W, c.Position.H

	var style lipgloss.Style
	var label string
	switch {
	case c.Matched:
		style = m.styles.CardMatched
		label = m.faceLabel(snap, c)
	case c.IsFaceUp():
		style = m.styles.CardFace
		if selected {
			style = m.styles.CardSelected
		}
		label = m.faceLabel(snap, c)
	default:
		style = m.styles.CardBack
		label = backFill(max(w-2, 1), max(h-2, 1))
	}
	if idx == m.cursor && !c.Matched {
		style = style.Border(lipgloss.DoubleBorder()).BorderForeground(m.styles.CardCursor.GetBorderTopForeground())
	}

	if w < 3 || h < 3 {
		// Too small for a border.
		style = style.BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false)
		style = style.Width(w).Height(h).MaxWidth(w).MaxHeight(h)
	} else {
		style = style.Width(w - 2).Height(h - 2).MaxWidth(w).MaxHeight(h)
	}
	out := strings.Split(style.Render(label), "\n")
	for len(out) < h {
		out = append(out, strings.Repeat(" ", w))
	}
	return out
}

// faceLabel shows glyph visuals as they are and falls back to the item name for image paths.
func (m *Model) faceLabel(snap state.Snapshot, c state.CardView) string {
	theme := ""
	if snap.Level != nil {
		theme = snap.Level.Theme
	}
	name := m.cfg.ItemName(theme, c.ItemID)
	if c.Visual == "" || c.Visual == game.PlaceholderVisual || filepath.Ext(c.Visual) != "" {
		if c.Visual == game.PlaceholderVisual {
			return game.PlaceholderVisual + "\n" + name
		}
		return name
	}
	if c.Position.H >= 5 {
		return c.Visual + "\n" + name
	}
	return c.Visual
}

func backFill(w, h int) string {
	row := strings.Repeat("░", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
