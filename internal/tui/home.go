package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/streak"
	"github.com/sadopc/streakr/internal/tracker"
)

type homeModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	stats streak.Stats
}

func newHomeModel(t *tracker.Tracker) homeModel {
	return homeModel{
		tracker: t,
		stats:   t.Stats(),
	}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h homeModel) update(msg statsChangedMsg) homeModel {
	h.stats = msg.stats
	return h
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}

	contentWidth := h.width - 4
	half := contentWidth/2 - 2

	streakPanel := h.renderStat(half, "Consecutive months", h.stats.ConsecutiveMonths, h.stats.ConsecutiveMonths > 0)
	yearPanel := h.renderStat(half, "Events last year", h.stats.EventsLastYear, false)
	stats := lipgloss.JoinHorizontal(lipgloss.Top, streakPanel, yearPanel)

	return lipgloss.JoinVertical(lipgloss.Left, stats, h.renderInfoPanel(contentWidth))
}

func (h homeModel) renderStat(w int, label string, value int, active bool) string {
	number := statNumberStyle.Width(w - 6).Render(fmt.Sprintf("%d", value))
	content := lipgloss.JoinVertical(lipgloss.Center,
		number,
		statLabelStyle.Width(w-6).Render(label),
	)
	if active {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (h homeModel) renderInfoPanel(w int) string {
	title := titleStyle.Render("Infos")
	today := h.tracker.Today()

	rows := []string{
		title,
		fmt.Sprintf("  Today        %s", highlightStyle.Render(today.String())),
	}

	ds := h.tracker.Dates()
	if len(ds) == 0 {
		rows = append(rows, mutedStyle.Render("  No dates logged yet. Press 2 to go to Dates and add one."))
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	last := ds[len(ds)-1]
	rows = append(rows,
		fmt.Sprintf("  Last event   %s", highlightStyle.Render(last.String())),
		fmt.Sprintf("  Logged       %s", highlightStyle.Render(fmt.Sprintf("%d", len(ds)))),
	)
	if h.stats.ConsecutiveMonths == 0 {
		rows = append(rows, warningStyle.Render("  Streak broken: log a date this month to start a new one."))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
