package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/practice/internal/model"
)

const (
	fieldDate = iota
	fieldInstrument
	fieldPiece
	fieldMinutes
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Date (YYYY-MM-DD)",
	"Instrument",
	"Piece / exercise",
	"Duration (minutes)",
	"Notes (optional)",
}

// sessionForm is the add/edit form: one text input per session field.
type sessionForm struct {
	title  string
	inputs []textinput.Model
	focus  int
	err    string

	// orig is the record being edited. shown holds its fields as the
	// inputs display them; inputs fold newlines into spaces.
	orig  model.PracticeSession
	shown [fieldCount]string
}

func newSessionForm(title string, ss model.PracticeSession) sessionForm {
	f := sessionForm{title: title, inputs: make([]textinput.Model, fieldCount), orig: ss}
	values := [fieldCount]string{ss.Date, ss.Instrument, ss.Piece, "", ss.Notes}
	if ss.DurationMinutes > 0 {
		values[fieldMinutes] = strconv.Itoa(ss.DurationMinutes)
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldMinutes].CharLimit = 5
	f.inputs[fieldDate].CharLimit = 10
	f.inputs[fieldNotes].CharLimit = 0 // unlimited
	for i := range f.inputs {
		f.inputs[i].SetValue(values[i])
		f.shown[i] = f.value(i)
	}
	f.inputs[f.focus].Focus()
	return f
}

func (f *sessionForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	f.inputs[f.focus].CursorEnd()
}

func (f *sessionForm) next() { f.setFocus(f.focus + 1) }
func (f *sessionForm) prev() { f.setFocus(f.focus - 1) }

// update forwards msg to the focused input.
func (f *sessionForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f sessionForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// minutes parses the duration field. Range checks are left to the store.
func (f sessionForm) minutes() (int, error) {
	raw := f.value(fieldMinutes)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("duration must be a whole number of minutes, got %q", raw)
	}
	return n, nil
}

// patch holds only the fields the user changed, so untouched values are
// never rewritten from their input rendering.
func (f sessionForm) patch(minutes int) model.Patch {
	changed := func(i int) *string {
		v := f.value(i)
		if v == f.shown[i] {
			return nil
		}
		return &v
	}
	p := model.Patch{
		Date:       changed(fieldDate),
		Instrument: changed(fieldInstrument),
		Piece:      changed(fieldPiece),
		Notes:      changed(fieldNotes),
	}
	if minutes != f.orig.DurationMinutes {
		p.DurationMinutes = &minutes
	}
	return p
}

func (f sessionForm) View() string {
	var b strings.Builder
	title := f.title
	if f.err != "" {
		title += "  " + errorStyle.Render(f.err)
	}
	b.WriteString(title)
	for i, in := range f.inputs {
		label := mutedStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = accentStyle.Render(fieldLabels[i])
		}
		b.WriteString("\n" + label + "\n" + in.View())
	}
	b.WriteString("\n" + helpStyle.Render("tab/shift+tab move • enter save • esc cancel"))
	return barStyle.Render(b.String())
}

// height is the number of terminal rows View occupies.
func (f sessionForm) height() int {
	return 2 + 1 + fieldCount*2 + 1
}

// -------------- filter form ----------------

const (
	filterInstrument = iota
	filterSince
	filterCount
)

var filterLabels = [filterCount]string{
	"Instrument (exact, any case)",
	"Since (YYYY-MM-DD)",
}

// filterForm edits the model.Filter the list is loaded with.
type filterForm struct {
	inputs [filterCount]textinput.Model
	focus  int
	err    string
}

func newFilterForm(cur model.Filter) filterForm {
	var f filterForm
	values := [filterCount]string{cur.Instrument, cur.Since}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = filterLabels[i]
		ti.CharLimit = 100
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[filterSince].CharLimit = 10
	f.inputs[f.focus].Focus()
	return f
}

func (f *filterForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + filterCount) % filterCount
	f.inputs[f.focus].Focus()
	f.inputs[f.focus].CursorEnd()
}

func (f *filterForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f filterForm) filter() model.Filter {
	return model.Filter{
		Instrument: strings.TrimSpace(f.inputs[filterInstrument].Value()),
		Since:      strings.TrimSpace(f.inputs[filterSince].Value()),
	}
}

func (f filterForm) View() string {
	var b strings.Builder
	title := "Filter sessions"
	if f.err != "" {
		title += "  " + errorStyle.Render(f.err)
	}
	b.WriteString(title)
	for i, in := range f.inputs {
		label := mutedStyle.Render(filterLabels[i])
		if i == f.focus {
			label = accentStyle.Render(filterLabels[i])
		}
		b.WriteString("\n" + label + "\n" + in.View())
	}
	b.WriteString("\n" + helpStyle.Render("enter apply (empty clears) • esc cancel"))
	return barStyle.Render(b.String())
}

func (f filterForm) height() int {
	return 2 + 1 + filterCount*2 + 1
}
