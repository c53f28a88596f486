package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Makepad-fr/practice/internal/model"
	"github.com/Makepad-fr/practice/internal/ui"
)

// SessionStore is what the TUI needs from the session store.
type SessionStore interface {
	Path() string
	List(f model.Filter) ([]model.PracticeSession, error)
	Add(instrument, piece string, durationMinutes int, notes, date string) (model.PracticeSession, error)
	Update(id string, p model.Patch) (model.PracticeSession, error)
	Delete(id string) error
	WeeklySummary(topN int) (model.WeeklySummary, error)
	ExportCSV(path string) (string, error)
}

// Options tune the interactive view.
type Options struct {
	TopN   int
	Logger zerolog.Logger
}

// sessionItem adapts a session to bubbles/list.Item
type sessionItem struct {
	model.PracticeSession
}

func (i sessionItem) Title() string       { return i.Piece }
func (i sessionItem) Description() string { return i.Instrument }
func (i sessionItem) FilterValue() string {
	return i.Date + " " + i.Instrument + " " + i.Piece + " " + i.Notes
}

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirmDelete
	modeFilter
)

type modelTUI struct {
	store   SessionStore
	opt     Options
	watcher *fileWatcher

	list    list.Model
	filter  model.Filter
	summary model.WeeklySummary
	width   int
	height  int

	mode     mode
	form     sessionForm
	editID   string // empty while adding
	deleting *model.PracticeSession
	filterUI filterForm

	status    string
	statusErr bool
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(sessionItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s  %s  %s  %s",
		mutedStyle.Render(it.Date),
		accentStyle.Render(ui.PadRight(ui.Truncate(it.Instrument, 16), 16)),
		ui.PadRight(ui.Truncate(it.Piece, 32), 32),
		successStyle.Render(fmt.Sprintf("%4d min", it.DurationMinutes)),
	)
	if it.Notes != "" {
		line += "  " + mutedStyle.Render(ui.Truncate(it.Notes, 40))
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	exportBind = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv"))
	reloadBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	filterBind = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "instrument/since filter"))
)

// Run starts the Bubble Tea program. Every change goes straight to the
// store; the view reloads whenever the store file changes on disk.
func Run(store SessionStore, opt Options) error {
	m, err := newModel(store, opt)
	if err != nil {
		return err
	}
	m.watch(store.Path())
	if m.watcher != nil {
		defer m.watcher.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newModel(store SessionStore, opt Options) (modelTUI, error) {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("session", "sessions")
	keys := func() []key.Binding {
		return []key.Binding{addBind, editBind, deleteBind, filterBind, exportBind, reloadBind}
	}
	l.AdditionalShortHelpKeys = keys
	l.AdditionalFullHelpKeys = keys

	m := modelTUI{store: store, opt: opt, list: l, width: 84, height: 24}
	if _, err := m.refresh(); err != nil {
		return modelTUI{}, err
	}
	return m, nil
}

// watch starts live reload for path. A failure leaves reload off and is
// reported on the status line.
func (m *modelTUI) watch(path string) {
	fw, err := newFileWatcher(path, m.opt.Logger)
	if err != nil {
		m.opt.Logger.Debug().Err(err).Str("path", path).Msg("live reload disabled")
		m.setStatus("live reload disabled: "+err.Error(), true)
		return
	}
	m.watcher = fw
}

// refresh reloads sessions and the weekly header from the store. The
// returned command re-applies an active list filter.
func (m *modelTUI) refresh() (tea.Cmd, error) {
	sessions, err := m.store.List(m.filter)
	if err != nil {
		return nil, err
	}
	items := make([]list.Item, 0, len(sessions))
	for _, ss := range sessions {
		items = append(items, sessionItem{ss})
	}
	cmd := m.list.SetItems(items)
	if m.list.Index() >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}

	summary, err := m.store.WeeklySummary(m.opt.TopN)
	if err != nil {
		return cmd, err
	}
	m.summary = summary
	m.list.Title = fmt.Sprintf("%s   %s %s → %s  %s %d min  %s %d",
		titleStyle.Render("Practice log"),
		accentStyle.Render("Week"), summary.StartDate, summary.EndDate,
		successStyle.Render("Total"), summary.TotalMinutes,
		pendingStyle.Render("Sessions"), summary.SessionCount,
	)
	if desc := describeFilter(m.filter); desc != "" {
		m.list.Title += "   " + mutedStyle.Render(desc)
	}
	return cmd, nil
}

func (m *modelTUI) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m *modelTUI) resize() {
	h := m.height - 4
	switch m.mode {
	case modeForm:
		h -= m.form.height()
	case modeConfirmDelete:
		h -= 3
	case modeFilter:
		h -= m.filterUI.height()
	}
	if m.status != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m modelTUI) selected() (sessionItem, bool) {
	it, ok := m.list.SelectedItem().(sessionItem)
	return it, ok
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case storeChangedMsg:
		cmd, err := m.refresh()
		if err != nil {
			m.setStatus("reload: "+err.Error(), true)
		}
		if m.watcher != nil {
			cmd = tea.Batch(cmd, m.watcher.wait())
		}
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeFilter:
		return m.updateFilter(msg)
	}
	return m.updateBrowse(msg)
}

func (m modelTUI) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.SettingFilter() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q":
		return m, tea.Quit

	case "a":
		m.mode = modeForm
		m.editID = ""
		m.form = newSessionForm("Add practice session", model.PracticeSession{
			Date: time.Now().Format("2006-01-02"),
		})
		m.resize()
		return m, textinput.Blink

	case "e":
		if it, ok := m.selected(); ok {
			m.mode = modeForm
			m.editID = it.ID
			m.form = newSessionForm("Edit session", it.PracticeSession)
			m.resize()
			return m, textinput.Blink
		}
		return m, nil

	case "d":
		if it, ok := m.selected(); ok {
			ss := it.PracticeSession
			m.deleting = &ss
			m.mode = modeConfirmDelete
			m.resize()
		}
		return m, nil

	case "f":
		m.mode = modeFilter
		m.filterUI = newFilterForm(m.filter)
		m.resize()
		return m, textinput.Blink

	case "x":
		path, err := m.store.ExportCSV("")
		if err != nil {
			m.setStatus("export: "+err.Error(), true)
		} else {
			m.setStatus("exported CSV to "+path, false)
		}
		m.resize()
		return m, nil

	case "r":
		cmd, err := m.refresh()
		if err != nil {
			m.setStatus("reload: "+err.Error(), true)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.mode = modeBrowse
			m.resize()
			return m, nil
		case "tab", "down":
			m.form.next()
			return m, nil
		case "shift+tab", "up":
			m.form.prev()
			return m, nil
		case "enter":
			return m.submitForm()
		}
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m modelTUI) submitForm() (tea.Model, tea.Cmd) {
	mins, err := m.form.minutes()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}

	var saved model.PracticeSession
	if m.editID != "" && m.form.patch(mins).Empty() {
		m.mode = modeBrowse
		m.setStatus("no changes", false)
		m.resize()
		return m, nil
	}
	if m.editID == "" {
		saved, err = m.store.Add(
			m.form.value(fieldInstrument),
			m.form.value(fieldPiece),
			mins,
			m.form.value(fieldNotes),
			m.form.value(fieldDate),
		)
	} else {
		saved, err = m.store.Update(m.editID, m.form.patch(mins))
	}
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}

	verb := "added"
	if m.editID != "" {
		verb = "updated"
	}
	m.opt.Logger.Debug().Str("id", saved.ID).Str("action", verb).Msg("session saved")
	m.mode = modeBrowse
	m.setStatus(fmt.Sprintf("%s %s | %s | %d min", verb, saved.Date, saved.Piece, saved.DurationMinutes), false)
	cmd, err := m.refresh()
	if err != nil {
		m.setStatus("reload: "+err.Error(), true)
	}
	m.resize()
	return m, cmd
}

func (m modelTUI) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.mode = modeBrowse
			m.resize()
			return m, nil
		case "tab", "down":
			m.filterUI.setFocus(m.filterUI.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.filterUI.setFocus(m.filterUI.focus - 1)
			return m, nil
		case "enter":
			return m.applyFilter()
		}
	}
	cmd := m.filterUI.update(msg)
	return m, cmd
}

// applyFilter reloads the list with the form's filter, keeping the old one
// when the store rejects it.
func (m modelTUI) applyFilter() (tea.Model, tea.Cmd) {
	prev := m.filter
	m.filter = m.filterUI.filter()
	cmd, err := m.refresh()
	if err != nil {
		m.filter = prev
		m.filterUI.err = err.Error()
		return m, nil
	}
	m.mode = modeBrowse
	if desc := describeFilter(m.filter); desc != "" {
		m.setStatus("showing "+desc, false)
	} else {
		m.setStatus("filter cleared", false)
	}
	m.resize()
	return m, cmd
}

func describeFilter(f model.Filter) string {
	var parts []string
	if f.Instrument != "" {
		parts = append(parts, "instrument "+f.Instrument)
	}
	if f.Since != "" {
		parts = append(parts, "since "+f.Since)
	}
	return strings.Join(parts, ", ")
}

func (m modelTUI) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	target := m.deleting
	m.mode = modeBrowse
	m.deleting = nil

	var cmd tea.Cmd
	if km.String() == "y" && target != nil {
		if err := m.store.Delete(target.ID); err != nil {
			m.setStatus("delete: "+err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("deleted %s | %s", target.Date, target.Piece), false)
			var rerr error
			if cmd, rerr = m.refresh(); rerr != nil {
				m.setStatus("reload: "+rerr.Error(), true)
			}
		}
	}
	m.resize()
	return m, cmd
}

func (m modelTUI) View() string {
	content := m.list.View()
	switch m.mode {
	case modeForm:
		content += "\n" + m.form.View()
	case modeFilter:
		content += "\n" + m.filterUI.View()
	case modeConfirmDelete:
		if m.deleting != nil {
			prompt := fmt.Sprintf("Delete %s | %s | %s? %s",
				m.deleting.Date, m.deleting.Instrument, m.deleting.Piece,
				helpStyle.Render("y = yes, any other key = no"))
			content += "\n" + barStyle.Render(errorStyle.Render("! ")+prompt)
		}
	}
	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		content += "\n" + style.Render(m.status)
	}
	return panelString(content)
}
