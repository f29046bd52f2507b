package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhasePill returns a colored indicator for a session phase.
func PhasePill(phase domain.Phase) string {
	switch phase {
	case domain.PhaseAwaitingClarification:
		return StyleYellow.Render("? Needs answer")
	case domain.PhaseAwaitingApproval:
		return StyleBlue.Render("◆ Awaiting approval")
	case domain.PhaseDone:
		return StyleDim.Render("✔ Done")
	case domain.PhaseGathering, domain.PhaseAnalyzing, domain.PhasePlanning, domain.PhaseCommitting:
		return StyleGreen.Render("● Working")
	default:
		return StyleDim.Render(string(phase))
	}
}

// PriorityBadge returns a colored priority label (P1 hottest).
func PriorityBadge(p string) string {
	switch domain.Priority(p) {
	case domain.PriorityP1:
		return StyleRed.Render("P1")
	case domain.PriorityP2:
		return StyleYellow.Render("P2")
	case domain.PriorityP3:
		return StyleBlue.Render("P3")
	case domain.PriorityP4:
		return StyleDim.Render("P4")
	default:
		return StyleDim.Render(p)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
