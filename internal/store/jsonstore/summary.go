package jsonstore

import (
	"sort"
	"time"

	"github.com/Makepad-fr/practice/internal/model"
)

// WeeklySummary aggregates the sessions dated from this week's Monday
// through today. topN caps TopPieces; zero or less means no cap.
func (s *Store) WeeklySummary(topN int) (model.WeeklySummary, error) {
	today := s.today()
	start := startOfWeek(today)
	end := today.Format(dateLayout)

	sessions, err := s.List(model.Filter{Since: start.Format(dateLayout)})
	if err != nil {
		return model.WeeklySummary{}, err
	}

	summary := model.WeeklySummary{
		StartDate: start.Format(dateLayout),
		EndDate:   end,
	}
	byInstrument := map[string]int{}
	byPiece := map[string]int{}
	for _, ss := range sessions {
		if ss.Date > end {
			continue
		}
		summary.TotalMinutes += ss.DurationMinutes
		summary.SessionCount++
		byInstrument[ss.Instrument] += ss.DurationMinutes
		byPiece[ss.Piece] += ss.DurationMinutes
	}
	summary.ByInstrument = rank(byInstrument, 0)
	summary.TopPieces = rank(byPiece, topN)
	return summary, nil
}

// startOfWeek returns the Monday on or before d.
func startOfWeek(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// rank orders totals by minutes descending, then name, keeping at most n.
func rank(totals map[string]int, n int) []model.Tally {
	out := make([]model.Tally, 0, len(totals))
	for name, mins := range totals {
		out = append(out, model.Tally{Name: name, Minutes: mins})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
