package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/practice/internal/model"
	"github.com/Makepad-fr/practice/internal/ui"
)

// -------------- structured output ----------------

func validOutput(format string) bool {
	switch format {
	case "", "table", "json", "yaml":
		return true
	}
	return false
}

// writeOutput encodes v as json or yaml, or calls table for the default view.
func writeOutput(w io.Writer, format string, v interface{}, table func()) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	table()
	return nil
}

// -------------- rendering helpers --------------

func shortID(id string) string {
	r := []rune(id)
	if len(r) > 8 {
		return string(r[:8])
	}
	return id
}

func renderSessions(w io.Writer, sessions []model.PracticeSession) {
	t := ui.Current()
	total := 0
	for _, ss := range sessions {
		total += ss.DurationMinutes
	}
	header := fmt.Sprintf("%s  %s %d  %s %d min",
		ui.C(t.Title, "Practice log"),
		ui.C(t.Accent, "Sessions"), len(sessions),
		ui.C(t.Success, "Total"), total,
	)

	lines := []string{header, ""}
	lines = append(lines, sessionLines(sessions)...)
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `practice add Piano \"Clair de lune\" 30`"))
	ui.Panel(w, lines)
}

func sessionLines(sessions []model.PracticeSession) []string {
	t := ui.Current()
	if len(sessions) == 0 {
		return []string{ui.C(t.Muted, "No sessions found.")}
	}

	instW, pieceW := 0, 0
	for _, ss := range sessions {
		instW = max(instW, ui.Width(ui.Truncate(ss.Instrument, 20)))
		pieceW = max(pieceW, ui.Width(ui.Truncate(ss.Piece, 36)))
	}

	out := make([]string, 0, len(sessions))
	for _, ss := range sessions {
		line := fmt.Sprintf("%s  %s  %s  %s  %4d min",
			ui.Dim(ui.PadRight(shortID(ss.ID), 8)),
			ss.Date,
			ui.PadRight(ui.C(t.Accent, ui.Truncate(ss.Instrument, 20)), instW),
			ui.PadRight(ui.Truncate(ss.Piece, 36), pieceW),
			ss.DurationMinutes,
		)
		if ss.Notes != "" {
			notes := strings.ReplaceAll(ss.Notes, "\n", " ")
			line += "  " + ui.C(t.Muted, ui.Truncate(notes, 40))
		}
		out = append(out, line)
	}
	return out
}

func renderWeek(w io.Writer, s model.WeeklySummary) {
	t := ui.Current()
	lines := []string{
		ui.C(t.Title, fmt.Sprintf("Week %s to %s", s.StartDate, s.EndDate)),
		fmt.Sprintf("%s %d  %s %d min",
			ui.C(t.Accent, "Sessions"), s.SessionCount,
			ui.C(t.Success, "Total"), s.TotalMinutes),
	}
	if s.SessionCount == 0 {
		lines = append(lines, "", ui.C(t.Muted, "No sessions logged this week"))
		ui.Panel(w, lines)
		return
	}

	nameW := 0
	for _, it := range s.ByInstrument {
		nameW = max(nameW, ui.Width(it.Name))
	}
	lines = append(lines, "", ui.C(t.Accent, "By instrument"))
	for _, it := range s.ByInstrument {
		lines = append(lines, fmt.Sprintf("%s  %s  %d min",
			ui.PadRight(it.Name, nameW),
			ui.C(t.Success, ui.ProgressBar(it.Minutes, s.TotalMinutes, 20)),
			it.Minutes))
	}

	if len(s.TopPieces) > 0 {
		lines = append(lines, "", ui.C(t.Accent, "Top pieces"))
		for _, p := range s.TopPieces {
			lines = append(lines, fmt.Sprintf("%s %s: %d min", ui.C(t.Pending, t.Bullet), p.Name, p.Minutes))
		}
	}
	ui.Panel(w, lines)
}

func renderSession(w io.Writer, ss model.PracticeSession) {
	t := ui.Current()
	notes := ss.Notes
	if notes == "" {
		notes = ui.C(t.Muted, "(none)")
	}
	field := func(k, v string) string { return ui.C(t.Accent, fmt.Sprintf("%-11s", k)) + " " + v }
	ui.Panel(w, []string{
		field("id", ss.ID),
		field("date", ss.Date),
		field("instrument", ss.Instrument),
		field("piece", ss.Piece),
		field("minutes", fmt.Sprintf("%d", ss.DurationMinutes)),
		field("notes", notes),
	})
}
