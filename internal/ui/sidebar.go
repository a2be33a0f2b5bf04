package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/iksnae/studymind/internal"
)

const (
	sidebarWidth = 30
	sidebarLimit = 20
)

// renderSidebar lists archived conversations, newest first. The current
// conversation is highlighted.
func renderSidebar(th Theme, convs []internal.Conversation, currentID string, height int, now time.Time) string {
	inner := sidebarWidth - 4
	lines := []string{th.SidebarTitle.Render("Conversations"), ""}

	if len(convs) == 0 {
		lines = append(lines, th.SidebarMeta.Render("No saved conversations"))
	}
	for i, c := range convs {
		title := c.Title
		if title == "" {
			title = "Untitled"
		}
		label := internal.Preview(fmt.Sprintf("%d. %s", i+1, title), inner)
		style := th.SidebarItem
		if c.ID == currentID {
			style = th.SidebarCur
		}
		lines = append(lines,
			style.Render(label),
			th.SidebarMeta.Render("   "+humanize.RelTime(c.UpdatedAt, now, "ago", "from now")),
		)
	}

	if height > 2 && len(lines) > height-2 {
		lines = lines[:height-2]
	}
	box := th.Sidebar.Width(sidebarWidth - 2)
	if height > 2 {
		box = box.Height(height - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func sidebarSummary(convs []internal.Conversation) string {
	switch len(convs) {
	case 0:
		return "no saved conversations"
	case 1:
		return "1 saved conversation"
	default:
		return fmt.Sprintf("%d saved conversations", len(convs))
	}
}
