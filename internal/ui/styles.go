package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of one colour scheme
type Theme struct {
	Dark bool

	Header       lipgloss.Style
	HeaderMuted  lipgloss.Style
	Footer       lipgloss.Style
	Notice       lipgloss.Style
	UserLabel    lipgloss.Style
	BotLabel     lipgloss.Style
	TaskLabel    lipgloss.Style
	ErrorText    lipgloss.Style
	PendingText  lipgloss.Style
	Timestamp    lipgloss.Style
	Sidebar      lipgloss.Style
	SidebarTitle lipgloss.Style
	SidebarItem  lipgloss.Style
	SidebarCur   lipgloss.Style
	SidebarMeta  lipgloss.Style
	Spinner      lipgloss.Style
}

type palette struct {
	primary, secondary, muted, border, text, bg, user, bot, warn, err lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   "#7C3AED",
		secondary: "#06B6D4",
		muted:     "#6B7280",
		border:    "#374151",
		text:      "#F9FAFB",
		bg:        "#1F2937",
		user:      "#A78BFA",
		bot:       "#22D3EE",
		warn:      "#F59E0B",
		err:       "#EF4444",
	}
	lightPalette = palette{
		primary:   "#6D28D9",
		secondary: "#0E7490",
		muted:     "#6B7280",
		border:    "#D1D5DB",
		text:      "#111827",
		bg:        "#EDE9FE",
		user:      "#7C3AED",
		bot:       "#0369A1",
		warn:      "#B45309",
		err:       "#B91C1C",
	}
)

// NewTheme builds the dark or light theme
func NewTheme(dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return Theme{
		Dark: dark,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(p.primary).
			Padding(0, 1),
		HeaderMuted: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Notice: lipgloss.NewStyle().
			Foreground(p.warn).
			Padding(0, 1),
		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.user),
		BotLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.bot),
		TaskLabel: lipgloss.NewStyle().
			Foreground(p.secondary).
			Italic(true),
		ErrorText: lipgloss.NewStyle().
			Foreground(p.err),
		PendingText: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		Timestamp: lipgloss.NewStyle().
			Foreground(p.muted),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		SidebarTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		SidebarItem: lipgloss.NewStyle().
			Foreground(p.text),
		SidebarCur: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		SidebarMeta: lipgloss.NewStyle().
			Foreground(p.muted),
		Spinner: lipgloss.NewStyle().
			Foreground(p.secondary),
	}
}
