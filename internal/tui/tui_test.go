package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/practice/internal/model"
	"github.com/Makepad-fr/practice/internal/store/jsonstore"
)

func setupModel(t *testing.T) (modelTUI, *jsonstore.Store) {
	t.Helper()
	store := jsonstore.New(filepath.Join(t.TempDir(), jsonstore.DataFileName))
	m, err := newModel(store, Options{TopN: 5, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return m, store
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m modelTUI, msgs ...tea.Msg) modelTUI {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(modelTUI)
		require.True(t, ok)
	}
	return m
}

func TestTUI_AddSession(t *testing.T) {
	m, store := setupModel(t)

	m = send(t, m, keyMsg("a"))
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, time.Now().Format("2006-01-02"), m.form.value(fieldDate))

	m = send(t, m,
		keyMsg("tab"), keyMsg("Piano"),
		keyMsg("tab"), keyMsg("Bach"),
		keyMsg("tab"), keyMsg("30"),
		keyMsg("tab"), keyMsg("legato"),
		keyMsg("enter"),
	)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.status, "added")
	assert.False(t, m.statusErr)

	sessions, err := store.List(model.Filter{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Piano", sessions[0].Instrument)
	assert.Equal(t, "Bach", sessions[0].Piece)
	assert.Equal(t, 30, sessions[0].DurationMinutes)
	assert.Equal(t, "legato", sessions[0].Notes)
	assert.Len(t, m.list.Items(), 1)
	assert.Equal(t, 30, m.summary.TotalMinutes)
}

func TestTUI_AddValidationKeepsForm(t *testing.T) {
	tests := []struct {
		name    string
		minutes string
		errMsg  string
	}{
		{"not a number", "abc", "whole number"},
		{"zero", "0", "positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := setupModel(t)
			m = send(t, m,
				keyMsg("a"),
				keyMsg("tab"), keyMsg("Piano"),
				keyMsg("tab"), keyMsg("Bach"),
				keyMsg("tab"), keyMsg(tt.minutes),
				keyMsg("enter"),
			)
			assert.Equal(t, modeForm, m.mode)
			assert.Contains(t, m.form.err, tt.errMsg)

			sessions, err := store.List(model.Filter{})
			require.NoError(t, err)
			assert.Empty(t, sessions)

			m = send(t, m, keyMsg("esc"))
			assert.Equal(t, modeBrowse, m.mode)
		})
	}
}

func TestTUI_EditSession(t *testing.T) {
	m, store := setupModel(t)
	orig, err := store.Add("Cello", "Suite 1", 20, "", "2026-10-01")
	require.NoError(t, err)
	m = send(t, m, keyMsg("r"))

	m = send(t, m, keyMsg("e"))
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Suite 1", m.form.value(fieldPiece))
	assert.Equal(t, "20", m.form.value(fieldMinutes))

	m.form.inputs[fieldMinutes].SetValue("45")
	m = send(t, m, keyMsg("enter"))
	assert.Equal(t, modeBrowse, m.mode)

	got, err := store.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, orig.Date, got.Date)
	assert.Equal(t, orig.Piece, got.Piece)
}

func TestTUI_EditKeepsUntouchedFields(t *testing.T) {
	m, store := setupModel(t)
	notes := strings.Repeat("n", 200) + "\nsecond line\n" + strings.Repeat("m", 37)
	require.Len(t, notes, 250)
	orig, err := store.Add("Viola", "Bartók duo", 20, notes, "2026-10-01")
	require.NoError(t, err)
	m = send(t, m, keyMsg("r"))

	m = send(t, m, keyMsg("e"))
	require.Equal(t, modeForm, m.mode)
	m.form.inputs[fieldMinutes].SetValue("45")

	p := m.form.patch(45)
	assert.Nil(t, p.Notes)
	assert.Nil(t, p.Date)
	assert.Nil(t, p.Instrument)
	assert.Nil(t, p.Piece)
	require.NotNil(t, p.DurationMinutes)

	m = send(t, m, keyMsg("enter"))
	assert.Equal(t, modeBrowse, m.mode)

	got, err := store.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, notes, got.Notes)
	assert.Equal(t, orig.Piece, got.Piece)
}

func TestTUI_EditWithoutChangesDoesNotWrite(t *testing.T) {
	m, store := setupModel(t)
	_, err := store.Add("Viola", "Scales", 20, "a\nb", "2026-10-01")
	require.NoError(t, err)
	m = send(t, m, keyMsg("r"))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	m = send(t, m, keyMsg("e"), keyMsg("enter"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "no changes", m.status)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestTUI_FilterForm(t *testing.T) {
	m, store := setupModel(t)
	for _, ss := range []struct{ instrument, piece, date string }{
		{"Piano", "Bach", "2026-10-01"},
		{"Guitar", "Sor", "2026-10-02"},
		{"piano", "Hanon", "2026-10-05"},
	} {
		_, err := store.Add(ss.instrument, ss.piece, 10, "", ss.date)
		require.NoError(t, err)
	}
	m = send(t, m, keyMsg("r"))
	require.Len(t, m.list.Items(), 3)

	m = send(t, m, keyMsg("f"))
	require.Equal(t, modeFilter, m.mode)
	m = send(t, m, keyMsg("PIANO"), keyMsg("enter"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Len(t, m.list.Items(), 2)
	assert.Equal(t, model.Filter{Instrument: "PIANO"}, m.filter)
	assert.Contains(t, m.status, "instrument PIANO")

	// The form opens with the active filter filled in.
	m = send(t, m, keyMsg("f"), keyMsg("tab"), keyMsg("2026-10-03"), keyMsg("enter"))
	assert.Equal(t, model.Filter{Instrument: "PIANO", Since: "2026-10-03"}, m.filter)
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "Hanon", m.list.Items()[0].(sessionItem).Piece)

	m = send(t, m, keyMsg("f"))
	m.filterUI.inputs[filterSince].SetValue("yesterday")
	m = send(t, m, keyMsg("enter"))
	assert.Equal(t, modeFilter, m.mode)
	assert.Contains(t, m.filterUI.err, "YYYY-MM-DD")
	assert.Equal(t, "2026-10-03", m.filter.Since)
	assert.Len(t, m.list.Items(), 1)

	m = send(t, m, keyMsg("esc"), keyMsg("f"))
	m.filterUI.inputs[filterInstrument].SetValue("")
	m.filterUI.inputs[filterSince].SetValue("")
	m = send(t, m, keyMsg("enter"))
	assert.Equal(t, model.Filter{}, m.filter)
	assert.Len(t, m.list.Items(), 3)
	assert.Equal(t, "filter cleared", m.status)
}

func TestTUI_WatchFailureShowsStatus(t *testing.T) {
	m, _ := setupModel(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	m.watch(filepath.Join(blocker, jsonstore.DataFileName))
	assert.Nil(t, m.watcher)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "live reload disabled")
}

func TestTUI_DeleteNeedsConfirmation(t *testing.T) {
	m, store := setupModel(t)
	_, err := store.Add("Cello", "Suite 1", 20, "", "2026-10-01")
	require.NoError(t, err)
	m = send(t, m, keyMsg("r"))

	m = send(t, m, keyMsg("d"), keyMsg("n"))
	assert.Equal(t, modeBrowse, m.mode)
	sessions, err := store.List(model.Filter{})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	m = send(t, m, keyMsg("d"))
	assert.Contains(t, m.View(), "Suite 1")
	m = send(t, m, keyMsg("y"))
	sessions, err = store.List(model.Filter{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Empty(t, m.list.Items())
	assert.Contains(t, m.status, "deleted")
}

func TestTUI_ReloadsOnStoreChange(t *testing.T) {
	m, store := setupModel(t)
	assert.Empty(t, m.list.Items())

	_, err := store.Add("Flute", "Syrinx", 15, "", "")
	require.NoError(t, err)
	m = send(t, m, storeChangedMsg{})
	assert.Len(t, m.list.Items(), 1)
	assert.Contains(t, m.list.Title, "15 min")
}

func TestTUI_Export(t *testing.T) {
	m, store := setupModel(t)
	_, err := store.Add("Flute", "Syrinx", 15, "", "")
	require.NoError(t, err)

	m = send(t, m, keyMsg("x"))
	assert.False(t, m.statusErr)
	assert.Contains(t, m.status, store.DefaultExportPath())
	_, err = os.Stat(store.DefaultExportPath())
	assert.NoError(t, err)
}

func TestTUI_Quit(t *testing.T) {
	m, _ := setupModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFileWatcher_ReportsRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", jsonstore.DataFileName)
	fw, err := newFileWatcher(path, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	got := make(chan tea.Msg, 1)
	go func() { got <- fw.wait()() }()

	store := jsonstore.New(path)
	_, err = store.Add("Flute", "Syrinx", 15, "", "")
	require.NoError(t, err)

	select {
	case msg := <-got:
		assert.IsType(t, storeChangedMsg{}, msg)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}
