package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/choretracker-go/internal/due"
	"github.com/nibzard/choretracker-go/internal/notification"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)

	categoryStyles = map[due.Category]lipgloss.Style{
		due.Overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		due.DueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		due.DueLater: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	}

	notificationStyles = map[notification.Level]lipgloss.Style{
		notification.Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")).Padding(0, 1),
		notification.Error: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")).Padding(0, 1),
	}
)

// categoryTitle is the section heading for a due category.
func categoryTitle(c due.Category) string {
	switch c {
	case due.Overdue:
		return "Overdue"
	case due.DueSoon:
		return "Due soon"
	case due.DueLater:
		return "Due later"
	default:
		return c.String()
	}
}
