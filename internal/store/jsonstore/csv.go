package jsonstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Makepad-fr/practice/internal/model"
)

// CSVHeader is the column order of exports. Legacy exports omit "id".
var CSVHeader = []string{"id", "date", "instrument", "piece", "duration_minutes", "notes"}

// ExportCSV writes every session, newest first, to path (or the default
// export path when empty) and returns the path written.
func (s *Store) ExportCSV(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = s.DefaultExportPath()
	}
	sessions, err := s.List(model.Filter{})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if err := WriteCSV(f, sessions); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	s.log.Debug().Str("path", path).Int("sessions", len(sessions)).Msg("csv exported")
	return path, nil
}

// WriteCSV encodes sessions with a header row.
func WriteCSV(w io.Writer, sessions []model.PracticeSession) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, ss := range sessions {
		row := []string{
			ss.ID,
			ss.Date,
			ss.Instrument,
			ss.Piece,
			strconv.Itoa(ss.DurationMinutes),
			ss.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return nil
}

// ReadCSV decodes an export. Columns are matched by header name, so both the
// current layout and the legacy one without ids are accepted. Rows are
// parsed, not validated; Import validates.
func ReadCSV(r io.Reader) ([]model.PracticeSession, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: missing header row")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "instrument", "piece", "duration_minutes"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv: missing column %q", required)
		}
	}

	var out []model.PracticeSession
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		mins, err := strconv.Atoi(strings.TrimSpace(field("duration_minutes")))
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w: %q", line, ErrInvalidDuration, field("duration_minutes"))
		}
		out = append(out, model.PracticeSession{
			ID:              field("id"),
			Date:            field("date"),
			Instrument:      field("instrument"),
			Piece:           field("piece"),
			DurationMinutes: mins,
			Notes:           field("notes"),
		})
	}
	return out, nil
}
