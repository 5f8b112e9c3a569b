package tui

import (
	"github.com/charmbracelet/lipgloss"

	"ratecast/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1F6F43")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1F6F43")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#1F6F43")).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

func signalStyle(s domain.Signal) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	switch s {
	case domain.SignalRaise:
		return base.Background(lipgloss.Color("#E5484D"))
	case domain.SignalLower:
		return base.Background(lipgloss.Color("#30A46C"))
	default:
		return base.Background(lipgloss.Color("#6E6E6E"))
	}
}
