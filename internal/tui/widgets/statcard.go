// ABOUTME: Stat card widget for dashboard overviews
// ABOUTME: Renders an icon, headline value, and caption inside a bordered card

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/trackdemic/trackdemic-cli/internal/tui/icons"
	"github.com/trackdemic/trackdemic-cli/internal/tui/styles"
)

// StatCard renders a compact stat display used on dashboard screens.
func StatCard(icon icons.Icon, label, value string, width int) string {
	if width <= 0 {
		width = 20
	}

	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	valueStyle := lipgloss.NewStyle().Foreground(styles.Text).Bold(true)

	content := fmt.Sprintf("%s %s\n%s",
		icon.String(),
		labelStyle.Render(label),
		valueStyle.Render(value))

	return styles.Panel.Width(width).Render(content)
}

// StatRow joins stat cards horizontally.
func StatRow(cards ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
