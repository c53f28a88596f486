package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Makepad-fr/practice/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every call reloads the whole file and mutations rewrite it whole.
// No locking; fine for a local single-user CLI.

const (
	// DataFileName is the store file name used when no path is configured.
	DataFileName = "practice_log.json"
	// ExportFileName is the CSV written next to the store file by default.
	ExportFileName = "practice_export.csv"

	dateLayout = "2006-01-02"
)

// Store manages the session collection kept in one JSON file.
type Store struct {
	path       string
	exportPath string
	log        zerolog.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces time.Now, which decides "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithExportPath overrides the default CSV export location.
func WithExportPath(p string) Option {
	return func(s *Store) { s.exportPath = p }
}

// New returns a store backed by the file at path. The file need not exist yet.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		log:   zerolog.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath is $HOME/.practice/practice_log.json, falling back to the
// working directory when there is no home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		wd, werr := os.Getwd()
		if werr != nil {
			return DataFileName
		}
		return filepath.Join(wd, DataFileName)
	}
	return filepath.Join(home, ".practice", DataFileName)
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// DefaultExportPath is where ExportCSV writes when given no path.
func (s *Store) DefaultExportPath() string {
	if s.exportPath != "" {
		return s.exportPath
	}
	return filepath.Join(filepath.Dir(s.path), ExportFileName)
}

func (s *Store) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// load reads the whole collection. Records without an id get one and the
// backfilled collection is written back before returning.
func (s *Store) load() ([]model.PracticeSession, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.PracticeSession{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []model.PracticeSession{}, nil
	}
	if err := validateDocument(b); err != nil {
		return nil, err
	}

	var sessions []model.PracticeSession
	if err := json.Unmarshal(b, &sessions); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	backfilled := 0
	for i := range sessions {
		if strings.TrimSpace(sessions[i].ID) == "" {
			sessions[i].ID = s.newID()
			backfilled++
		}
	}
	if backfilled > 0 {
		if err := s.save(sessions); err != nil {
			return nil, fmt.Errorf("persist backfilled ids: %w", err)
		}
		s.log.Info().Str("path", s.path).Int("count", backfilled).Msg("assigned ids to legacy sessions")
	}

	s.log.Debug().Str("path", s.path).Int("sessions", len(sessions)).Msg("store loaded")
	return sessions, nil
}

// save writes the collection to a sibling temp file and renames it into
// place, so a failed write leaves the previous file intact.
func (s *Store) save(sessions []model.PracticeSession) error {
	if sessions == nil {
		sessions = []model.PracticeSession{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sessions); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}

	s.log.Debug().Str("path", s.path).Int("sessions", len(sessions)).Msg("store saved")
	return nil
}
