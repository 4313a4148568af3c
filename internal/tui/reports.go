package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/streak"
	"github.com/sadopc/streakr/internal/tracker"
)

// reportRanges are the selectable chart spans in months.
var reportRanges = []int{6, 12, 24}

type reportsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	rangeIdx int
	months   []streak.MonthCount

	chart barchart.Model
}

func newReportsModel(t *tracker.Tracker) reportsModel {
	return reportsModel{
		tracker:  t,
		rangeIdx: 1,
		chart:    barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) span() int {
	return reportRanges[r.rangeIdx]
}

// refresh rebuilds the buckets and the chart from the tracker.
func (r reportsModel) refresh() reportsModel {
	r.months = r.tracker.Monthly(r.span())
	r.buildChart()
	return r
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsChangedMsg:
		return r.refresh(), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if r.rangeIdx > 0 {
				r.rangeIdx--
			}
			return r.refresh(), nil
		case key.Matches(msg, keys.Right):
			if r.rangeIdx < len(reportRanges)-1 {
				r.rangeIdx++
			}
			return r.refresh(), nil
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, m := range r.months {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if m.Count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: monthLabel(m.Year, m.Month)[:3],
			Values: []barchart.BarValue{{
				Name:  monthLabel(m.Year, m.Month),
				Value: float64(m.Count),
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	var rangeTabs []string
	for i, n := range reportRanges {
		label := fmt.Sprintf("%dm", n)
		if i == r.rangeIdx {
			rangeTabs = append(rangeTabs, activeTabStyle.Render(label))
		} else {
			rangeTabs = append(rangeTabs, inactiveTabStyle.Render(label))
		}
	}

	dateLabel := ""
	if len(r.months) > 0 {
		first, last := r.months[0], r.months[len(r.months)-1]
		dateLabel = mutedStyle.Render(fmt.Sprintf("%s — %s",
			monthLabel(first.Year, first.Month), monthLabel(last.Year, last.Month)))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Events per month"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, rangeTabs...), "  ", dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: change range")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderSummary(), "", nav,
		),
	)
}

func (r reportsModel) renderSummary() string {
	total, active, best := 0, 0, 0
	for _, m := range r.months {
		total += m.Count
		if m.Count > 0 {
			active++
		}
		best = max(best, m.Count)
	}
	if total == 0 {
		return mutedStyle.Render("  No events in this period")
	}
	parts := []string{
		fmt.Sprintf("total %s", highlightStyle.Render(fmt.Sprintf("%d", total))),
		fmt.Sprintf("active months %s", highlightStyle.Render(fmt.Sprintf("%d/%d", active, len(r.months)))),
		fmt.Sprintf("busiest month %s", highlightStyle.Render(fmt.Sprintf("%d", best))),
	}
	return "  " + strings.Join(parts, "   ")
}
