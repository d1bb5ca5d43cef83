package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lamim/promptlab/internal/render"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(render.Primary).
			PaddingLeft(1).
			PaddingRight(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(render.Muted).
			PaddingLeft(1)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(1)

	FocusedLabelStyle = LabelStyle.
				Foreground(render.Primary)

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginLeft(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.Muted)

	FocusedButtonStyle = ButtonStyle.
				BorderForeground(render.Primary).
				Foreground(render.Primary).
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(render.Danger).
			PaddingLeft(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(render.Success).
			PaddingLeft(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(render.Muted).
			PaddingLeft(1)
)
