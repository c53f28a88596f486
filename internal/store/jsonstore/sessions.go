package jsonstore

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Makepad-fr/practice/internal/model"
)

// Add validates and appends a new session. An empty date means today.
func (s *Store) Add(instrument, piece string, durationMinutes int, notes, date string) (model.PracticeSession, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.today().Format(dateLayout)
	}
	session, err := validate(model.PracticeSession{
		Date:            date,
		Instrument:      instrument,
		Piece:           piece,
		DurationMinutes: durationMinutes,
		Notes:           notes,
	})
	if err != nil {
		return model.PracticeSession{}, err
	}

	sessions, err := s.load()
	if err != nil {
		return model.PracticeSession{}, err
	}
	session.ID = s.newID()
	sessions = append(sessions, session)
	if err := s.save(sessions); err != nil {
		return model.PracticeSession{}, err
	}
	return session, nil
}

// List returns the sessions matching f, newest date first.
func (s *Store) List(f model.Filter) ([]model.PracticeSession, error) {
	sessions, err := s.load()
	if err != nil {
		return nil, err
	}
	return filterSessions(sessions, f)
}

// TotalMinutes sums the durations of the sessions matching f.
func (s *Store) TotalMinutes(f model.Filter) (int, error) {
	sessions, err := s.List(f)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, ss := range sessions {
		total += ss.DurationMinutes
	}
	return total, nil
}

// Get looks a session up by its full id.
func (s *Store) Get(id string) (model.PracticeSession, error) {
	sessions, err := s.load()
	if err != nil {
		return model.PracticeSession{}, err
	}
	i := indexOf(sessions, id)
	if i < 0 {
		return model.PracticeSession{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sessions[i], nil
}

// Update applies the non-nil fields of p to the session with the given id.
func (s *Store) Update(id string, p model.Patch) (model.PracticeSession, error) {
	sessions, err := s.load()
	if err != nil {
		return model.PracticeSession{}, err
	}
	i := indexOf(sessions, id)
	if i < 0 {
		return model.PracticeSession{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := sessions[i]
	if p.Date != nil {
		d := strings.TrimSpace(*p.Date)
		if _, err := parseDate(d); err != nil {
			return model.PracticeSession{}, err
		}
		updated.Date = d
	}
	if p.Instrument != nil {
		v, err := requireText("instrument", *p.Instrument)
		if err != nil {
			return model.PracticeSession{}, err
		}
		updated.Instrument = v
	}
	if p.Piece != nil {
		v, err := requireText("piece", *p.Piece)
		if err != nil {
			return model.PracticeSession{}, err
		}
		updated.Piece = v
	}
	if p.DurationMinutes != nil {
		if err := checkDuration(*p.DurationMinutes); err != nil {
			return model.PracticeSession{}, err
		}
		updated.DurationMinutes = *p.DurationMinutes
	}
	if p.Notes != nil {
		updated.Notes = cleanText(*p.Notes)
	}

	sessions[i] = updated
	if err := s.save(sessions); err != nil {
		return model.PracticeSession{}, err
	}
	return updated, nil
}

// Delete removes the session with the given id.
func (s *Store) Delete(id string) error {
	sessions, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(sessions, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sessions = append(sessions[:i], sessions[i+1:]...)
	return s.save(sessions)
}

// ResolveIDPrefix returns the only session whose id starts with prefix.
func (s *Store) ResolveIDPrefix(prefix string) (model.PracticeSession, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return model.PracticeSession{}, fmt.Errorf("%w: id prefix", ErrMissingField)
	}
	sessions, err := s.load()
	if err != nil {
		return model.PracticeSession{}, err
	}

	var matches []model.PracticeSession
	for _, ss := range sessions {
		if strings.HasPrefix(ss.ID, prefix) {
			matches = append(matches, ss)
		}
	}
	switch len(matches) {
	case 0:
		return model.PracticeSession{}, fmt.Errorf("%w: no id starts with %q", ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return model.PracticeSession{}, fmt.Errorf("%w: %q matches %d sessions", ErrAmbiguousID, prefix, len(matches))
	}
}

// Import appends already-built sessions in a single save. A record keeps its
// id unless it is empty or already taken. Nothing is written if any record
// fails validation.
func (s *Store) Import(in []model.PracticeSession) (int, error) {
	sessions, err := s.load()
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(sessions)+len(in))
	for _, ss := range sessions {
		seen[ss.ID] = true
	}

	added := make([]model.PracticeSession, 0, len(in))
	for n, rec := range in {
		clean, err := validate(rec)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", n+1, err)
		}
		clean.ID = strings.TrimSpace(rec.ID)
		if clean.ID == "" || seen[clean.ID] {
			clean.ID = s.newID()
		}
		seen[clean.ID] = true
		added = append(added, clean)
	}
	if len(added) == 0 {
		return 0, nil
	}
	if err := s.save(append(sessions, added...)); err != nil {
		return 0, err
	}
	s.log.Info().Int("count", len(added)).Msg("sessions imported")
	return len(added), nil
}

// -------------- helpers ----------------

func filterSessions(sessions []model.PracticeSession, f model.Filter) ([]model.PracticeSession, error) {
	instrument := strings.TrimSpace(f.Instrument)

	var since time.Time
	hasSince := strings.TrimSpace(f.Since) != ""
	if hasSince {
		d, err := parseDate(strings.TrimSpace(f.Since))
		if err != nil {
			return nil, fmt.Errorf("since: %w", err)
		}
		since = d
	}

	out := make([]model.PracticeSession, 0, len(sessions))
	for _, ss := range sessions {
		if instrument != "" && !strings.EqualFold(ss.Instrument, instrument) {
			continue
		}
		if hasSince {
			d, err := parseDate(ss.Date)
			if err != nil {
				return nil, fmt.Errorf("session %s: %w", ss.ID, err)
			}
			if d.Before(since) {
				continue
			}
		}
		out = append(out, ss)
	}

	// ISO dates order lexically.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func indexOf(sessions []model.PracticeSession, id string) int {
	for i, ss := range sessions {
		if ss.ID == id {
			return i
		}
	}
	return -1
}

// validate trims text fields and checks every invariant of a full record.
// The id is passed through untouched.
func validate(in model.PracticeSession) (model.PracticeSession, error) {
	out := in
	out.Date = strings.TrimSpace(in.Date)
	if _, err := parseDate(out.Date); err != nil {
		return model.PracticeSession{}, err
	}
	if err := checkDuration(in.DurationMinutes); err != nil {
		return model.PracticeSession{}, err
	}
	var err error
	if out.Instrument, err = requireText("instrument", in.Instrument); err != nil {
		return model.PracticeSession{}, err
	}
	if out.Piece, err = requireText("piece", in.Piece); err != nil {
		return model.PracticeSession{}, err
	}
	out.Notes = cleanText(in.Notes)
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: got %q", ErrInvalidDate, s)
	}
	return d, nil
}

func checkDuration(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, minutes)
	}
	return nil
}

// cleanText trims v and stores line breaks as "\n", which is what a CSV
// export reads back.
func cleanText(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, "\r\n", "\n"))
}

func requireText(field, v string) (string, error) {
	v = cleanText(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return v, nil
}
