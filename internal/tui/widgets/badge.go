// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for roles, results, and risk levels

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	badgeOKBg      = lipgloss.Color("#10B981")
	badgeWarnBg    = lipgloss.Color("#F59E0B")
	badgeCritBg    = lipgloss.Color("#EF4444")
	badgeInfoBg    = lipgloss.Color("#3B82F6")
	badgeNeutralBg = lipgloss.Color("#6B7280")
	badgeLightFg   = lipgloss.Color("#FFFFFF")
	badgeDarkFg    = lipgloss.Color("#000000")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = badgeOKBg, badgeLightFg
	case StatusWarning:
		bg, fg = badgeWarnBg, badgeDarkFg
	case StatusCritical:
		bg, fg = badgeCritBg, badgeLightFg
	case StatusInfo:
		bg, fg = badgeInfoBg, badgeLightFg
	default:
		bg, fg = badgeNeutralBg, badgeLightFg
	}

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// RoleBadge renders a role with its conventional color.
func RoleBadge(role string) string {
	switch strings.ToLower(role) {
	case "admin":
		return Badge("ADMIN", StatusCritical)
	case "faculty":
		return Badge("FACULTY", StatusInfo)
	case "student":
		return Badge("STUDENT", StatusOK)
	default:
		return Badge(strings.ToUpper(role), StatusNeutral)
	}
}

// RiskBadge renders a risk level from the performance tracker.
func RiskBadge(level string) string {
	switch strings.ToLower(level) {
	case "high":
		return Badge("HIGH RISK", StatusCritical)
	case "medium":
		return Badge("MEDIUM", StatusWarning)
	case "low":
		return Badge("LOW RISK", StatusOK)
	default:
		return Badge(strings.ToUpper(level), StatusNeutral)
	}
}
