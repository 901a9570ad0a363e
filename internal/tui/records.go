package tui

import (
	"fmt"
	"strings"
	"time"

	"go-match/internal/config"
	"go-match/internal/records"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// RenderRecords prints, for every configured level, its play count and the
// n fastest wins as a table.
func RenderRecords(cfg config.Config, entries []records.Entry, n int, styles Styles) string {
	var b strings.Builder
	for i, l := range cfg.Levels {
		h := records.NewHistory(l.ID, entries)

		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.Title.Render(fmt.Sprintf("Level %d · %s", l.ID, cfg.ThemeName(l.Theme))))
		b.WriteString(styles.Subtle.Render(fmt.Sprintf("  %d plays, %d wins", h.Plays, h.Wins)))
		b.WriteString("\n")

		best := h.GetNBestEntries(n)
		if len(best) == 0 {
			b.WriteString(styles.Subtle.Render("  no wins yet"))
			b.WriteString("\n")
			continue
		}
		b.WriteString(recordsTable(best).View())
		b.WriteString("\n")
	}
	return b.String()
}

func recordsTable(entries []records.Entry) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Attempts", Width: 10},
		{Title: "Mistakes", Width: 10},
		{Title: "Date", Width: 18},
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			formatDuration(e.Elapsed),
			fmt.Sprintf("%d", e.Attempts),
			fmt.Sprintf("%d", e.Mistakes),
			formatTimestamp(e.Timestamp),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2), // header and its border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Not focused, so no row is highlighted.
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("Jan 02 15:04")
}
