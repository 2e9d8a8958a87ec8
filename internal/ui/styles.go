// Package ui renders the collector's terminal output: the badge status
// table, phase summaries, and the credential report.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
)

// Semantic colors shared by every view.
var (
	ColorSuccess = lipgloss.Color("#8BC34A") // earned
	ColorWarning = lipgloss.Color("#FFC107") // attempting / skipped
	ColorDanger  = lipgloss.Color("#e53935") // failed
	ColorInfo    = lipgloss.Color("#2196F3") // pending
	ColorMuted   = lipgloss.Color("#7a8494")
)

// Styles bundles the lipgloss styles a view needs.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	Earned     lipgloss.Style
	Attempting lipgloss.Style
	Failed     lipgloss.Style
	Skipped    lipgloss.Style
	Pending    lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Underline(true),
		Header: lipgloss.NewStyle().Bold(true),
		Body:   lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Foreground(ColorMuted),

		Earned:     lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Attempting: lipgloss.NewStyle().Foreground(ColorWarning),
		Failed:     lipgloss.NewStyle().Foreground(ColorDanger),
		Skipped:    lipgloss.NewStyle().Foreground(ColorWarning).Faint(true),
		Pending:    lipgloss.NewStyle().Foreground(ColorInfo),
	}
}

// ForStatus picks the style matching a ledger status.
func (s Styles) ForStatus(status progress.Status) lipgloss.Style {
	switch status {
	case progress.StatusEarned:
		return s.Earned
	case progress.StatusAttempting:
		return s.Attempting
	case progress.StatusFailed:
		return s.Failed
	case progress.StatusSkipped:
		return s.Skipped
	default:
		return s.Pending
	}
}
