package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/streakr/internal/config"
	"github.com/sadopc/streakr/internal/streak"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewDates
	viewReports
	viewSettings
)

var viewNames = []string{"Home", "Dates", "Reports", "Settings"}

// --- Messages ---

type statsChangedMsg struct {
	stats streak.Stats
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type settingsSavedMsg struct {
	cfg *config.Config
}

// --- Helpers ---

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

func errorCmd(err error) tea.Cmd {
	return statusCmd(fmt.Sprintf("Error: %v", err), true)
}

func statsCmd(stats streak.Stats) tea.Cmd {
	return func() tea.Msg { return statsChangedMsg{stats: stats} }
}

func monthLabel(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 06")
}
