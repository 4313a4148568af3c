package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/config"
)

type settingsModel struct {
	cfg     *config.Config
	cfgPath string
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	rejectDuplicates *bool
	exportDir        *string
}

func newSettingsModel(cfg *config.Config, cfgPath string) settingsModel {
	rd, ed := false, ""
	return settingsModel{
		cfg:              cfg,
		cfgPath:          cfgPath,
		rejectDuplicates: &rd,
		exportDir:        &ed,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsSavedMsg:
		s.cfg = msg.cfg
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.rejectDuplicates = s.cfg.RejectDuplicates
	*s.exportDir = s.cfg.ExportDir

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reject duplicate dates").
				Description("Refuse to log a day that is already logged").
				Value(s.rejectDuplicates),
			huh.NewInput().
				Title("Export directory").
				Value(s.exportDir).
				Validate(validateDir),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validateDir(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("directory is required")
	}
	info, err := os.Stat(v)
	if err != nil {
		return fmt.Errorf("cannot use %s: %w", v, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", v)
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveSettings()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	reject := *s.rejectDuplicates
	dir := strings.TrimSpace(*s.exportDir)

	saved, err := config.Update(s.cfgPath, func(c *config.Config) {
		c.RejectDuplicates = reject
		c.ExportDir = dir
	})
	if err != nil {
		return errorCmd(err)
	}

	// Keep env overrides for the running session; only the edited fields change.
	next := *s.cfg
	next.RejectDuplicates = saved.RejectDuplicates
	next.ExportDir = saved.ExportDir
	return tea.Batch(
		func() tea.Msg { return settingsSavedMsg{cfg: &next} },
		statusCmd("Settings saved", false),
	)
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	entries := []struct{ k, v string }{
		{"reject_duplicates", fmt.Sprintf("%t", s.cfg.RejectDuplicates)},
		{"export_dir", s.cfg.ExportDir},
		{"data_dir", s.cfg.DataDir},
		{"backend", s.cfg.Backend},
		{"log_level", s.cfg.LogLevel},
	}
	for _, e := range entries {
		label := lipgloss.NewStyle().Width(24).Render(e.k)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(e.v)))
	}

	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render("  Config file: "+s.cfgPath))
	rows = append(rows, mutedStyle.Render("  Press enter to edit settings. data_dir, backend and log_level apply on restart."))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
