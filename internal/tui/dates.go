package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/streakr/internal/dates"
	"github.com/sadopc/streakr/internal/tracker"
)

type datesModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	// formActive is true while the date input has focus.
	formActive bool
	input      textinput.Model
	inputValid bool
}

func newDatesModel(t *tracker.Tracker) datesModel {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.Prompt = "Date: "
	ti.CharLimit = 16
	ti.Width = 16

	d := datesModel{tracker: t, input: ti}
	d.cursor = max(0, t.Len()-1)
	return d
}

func (d *datesModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d datesModel) update(msg tea.Msg) (datesModel, tea.Cmd) {
	if d.formActive {
		return d.updateInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	n := d.tracker.Len()

	switch {
	case key.Matches(keyMsg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if d.cursor < n-1 {
			d.cursor++
		}
	case key.Matches(keyMsg, keys.New), key.Matches(keyMsg, keys.Enter):
		return d.showInput()
	case key.Matches(keyMsg, keys.Delete):
		if n == 0 {
			return d, nil
		}
		d.cursor = min(d.cursor, n-1)
		removed := d.tracker.Dates()[d.cursor]
		stats, err := d.tracker.RemoveAt(d.cursor)
		if err != nil {
			return d, errorCmd(err)
		}
		if d.cursor >= d.tracker.Len() {
			d.cursor = max(0, d.tracker.Len()-1)
		}
		return d, tea.Batch(statsCmd(stats), statusCmd("Removed "+removed.String(), false))
	}
	return d, nil
}

func (d datesModel) showInput() (datesModel, tea.Cmd) {
	d.formActive = true
	d.input.Reset()
	d.inputValid = false
	d.restyleInput()
	return d, d.input.Focus()
}

func (d datesModel) updateInput(msg tea.Msg) (datesModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Back):
			d.formActive = false
			d.input.Blur()
			return d, nil
		case key.Matches(keyMsg, keys.Enter):
			return d.submit()
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	_, err := dates.Parse(d.input.Value())
	d.inputValid = err == nil
	d.restyleInput()
	return d, cmd
}

// submit adds the typed date. Invalid text keeps the input open so it can
// be corrected.
func (d datesModel) submit() (datesModel, tea.Cmd) {
	text := d.input.Value()
	stats, err := d.tracker.AddText(text)
	if err != nil {
		return d, errorCmd(err)
	}

	added, _ := dates.Parse(text)
	for i, v := range d.tracker.Dates() {
		if v == added {
			d.cursor = i
		}
	}
	d.input.Reset()
	d.inputValid = false
	d.restyleInput()
	return d, tea.Batch(statsCmd(stats), statusCmd("Added "+added.String(), false))
}

func (d *datesModel) restyleInput() {
	if d.input.Value() == "" {
		d.input.TextStyle = normalItemStyle
		return
	}
	if d.inputValid {
		d.input.TextStyle = inputValidStyle
	} else {
		d.input.TextStyle = inputInvalidStyle
	}
}

func (d datesModel) view() string {
	w := d.width - 4
	ds := d.tracker.Dates()

	title := titleStyle.Render("Dates")
	count := mutedStyle.Render(fmt.Sprintf("(%d)", len(ds)))

	var rows []string
	rows = append(rows, fmt.Sprintf("%s %s", title, count), "")

	if len(ds) == 0 {
		rows = append(rows, mutedStyle.Render("  No dates logged yet"))
	} else {
		start, end := d.visibleRange(len(ds))
		if start > 0 {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
		}
		for i := start; i < end; i++ {
			cursor := "  "
			style := normalItemStyle
			if i == d.cursor && !d.formActive {
				cursor = "> "
				style = selectedItemStyle
			}
			rows = append(rows, style.Render(fmt.Sprintf("%s%3d  %s", cursor, i+1, ds[i])))
		}
		if end < len(ds) {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(ds)-end)))
		}
	}

	rows = append(rows, "")
	if d.formActive {
		rows = append(rows, d.input.View())
		rows = append(rows, mutedStyle.Render("  enter: add  esc: cancel"))
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}
	rows = append(rows, mutedStyle.Render("  a: add date  d: delete selected  ↑/↓: move"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// visibleRange picks the window of rows to draw so the cursor stays visible.
func (d datesModel) visibleRange(n int) (int, int) {
	// title, blank, two scroll hints, blank, input/hint lines, panel chrome
	rowsAvail := d.height - 12
	if rowsAvail < 3 {
		rowsAvail = 3
	}
	if n <= rowsAvail {
		return 0, n
	}
	start := d.cursor - rowsAvail/2
	if start < 0 {
		start = 0
	}
	if start+rowsAvail > n {
		start = n - rowsAvail
	}
	return start, start + rowsAvail
}
