package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
)

// Table renders static tabular data with a title row and a divider.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string

	// styleFor, when set, styles the whole row by its index.
	styleFor func(row int) *lipgloss.Style
}

// NewTable creates an empty table.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	headerStyle := styles.Header.Padding(0, 1)
	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(styles.Muted.Render("|"))
		}
	}
	sb.WriteString("\n")

	total := len(t.Headers) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)) + "\n")

	for rowIdx, row := range t.Rows {
		cellStyle := styles.Body
		if t.styleFor != nil {
			if s := t.styleFor(rowIdx); s != nil {
				cellStyle = *s
			}
		}
		cellStyle = cellStyle.Padding(0, 1)
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(styles.Muted.Render("|"))
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// StatusTable renders the full badge ledger grouped by phase.
func StatusTable(reg *registry.Registry, tracker *progress.Tracker, styles Styles) string {
	var sb strings.Builder

	for phase := registry.PhaseMin; phase <= registry.PhaseMax; phase++ {
		badges := reg.ByPhase(phase)
		sort.Slice(badges, func(i, j int) bool { return badges[i].ID < badges[j].ID })

		t := NewTable(fmt.Sprintf("Phase %d", phase), "Badge", "Status", "Auto", "Details")
		rowStyles := make([]lipgloss.Style, 0, len(badges))
		for _, b := range badges {
			status := tracker.GetStatus(b.ID)
			auto := ""
			if b.Automatable {
				auto = "yes"
			}
			details := ""
			if rec, ok := tracker.Get(b.ID); ok {
				details = rec.Details
			}
			t.AddRow(b.Name, string(status), auto, details)
			rowStyles = append(rowStyles, styles.ForStatus(status))
		}
		t.styleFor = func(row int) *lipgloss.Style { return &rowStyles[row] }
		sb.WriteString(t.View(styles))
	}

	sb.WriteString(SummaryLine(tracker))
	return sb.String()
}

// SummaryLine renders the one-line earned/total tally.
func SummaryLine(tracker *progress.Tracker) string {
	var earned, total int
	for _, pc := range tracker.Summary() {
		earned += pc.Earned
		total += pc.Total
	}
	return fmt.Sprintf("Earned %d of %d badges\n", earned, total)
}

// PhaseSummaryTable renders the per-phase tallies after a collect run.
func PhaseSummaryTable(tracker *progress.Tracker, styles Styles) string {
	t := NewTable("Progress by phase", "Phase", "Earned", "Failed", "Skipped", "Pending", "Total")
	for _, pc := range tracker.Summary() {
		t.AddRow(
			fmt.Sprintf("%d", pc.Phase),
			fmt.Sprintf("%d", pc.Earned),
			fmt.Sprintf("%d", pc.Failed),
			fmt.Sprintf("%d", pc.Skipped),
			fmt.Sprintf("%d", pc.Pending),
			fmt.Sprintf("%d", pc.Total),
		)
	}
	return t.View(styles)
}
