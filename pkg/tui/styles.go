package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/controller"
)

type palette struct {
	accent  lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	surface lipgloss.Color
	success lipgloss.Color
	danger  lipgloss.Color
}

var (
	lightPalette = palette{
		accent:  "#0f766e",
		text:    "#1f2d24",
		muted:   "#5b7566",
		border:  "#9ec9b5",
		surface: "#e6f4ec",
		success: "#15803d",
		danger:  "#b91c1c",
	}
	darkPalette = palette{
		accent:  "#34d399",
		text:    "#e5f2ea",
		muted:   "#8aa697",
		border:  "#2f4a3c",
		surface: "#183126",
		success: "#4ade80",
		danger:  "#f87171",
	}
)

type styles struct {
	header      lipgloss.Style
	sidebar     lipgloss.Style
	detail      lipgloss.Style
	item        lipgloss.Style
	itemActive  lipgloss.Style
	itemCursor  lipgloss.Style
	preview     lipgloss.Style
	date        lipgloss.Style
	title       lipgloss.Style
	meta        lipgloss.Style
	hint        lipgloss.Style
	status      lipgloss.Style
	errorStatus lipgloss.Style
	splash      lipgloss.Style
}

func newStyles(theme controller.Theme) styles {
	p := lightPalette
	if theme == controller.Dark {
		p = darkPalette
	}

	return styles{
		header:      lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
		sidebar:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		detail:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		item:        lipgloss.NewStyle().Foreground(p.text),
		itemActive:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		itemCursor:  lipgloss.NewStyle().Background(p.surface).Foreground(p.text),
		preview:     lipgloss.NewStyle().Foreground(p.muted),
		date:        lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		meta:        lipgloss.NewStyle().Foreground(p.muted),
		hint:        lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		status:      lipgloss.NewStyle().Foreground(p.success),
		errorStatus: lipgloss.NewStyle().Foreground(p.danger),
		splash:      lipgloss.NewStyle().Foreground(p.accent).Bold(true),
	}
}
