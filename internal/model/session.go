package model

// PracticeSession is one logged practice block.
// Date is an ISO calendar date (YYYY-MM-DD); ID never changes once assigned.
type PracticeSession struct {
	ID              string `json:"id" yaml:"id"`
	Date            string `json:"date" yaml:"date"`
	Instrument      string `json:"instrument" yaml:"instrument"`
	Piece           string `json:"piece" yaml:"piece"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	Notes           string `json:"notes" yaml:"notes"`
}

// Patch carries the fields of an update. Nil fields are left untouched.
type Patch struct {
	Date            *string
	Instrument      *string
	Piece           *string
	DurationMinutes *int
	Notes           *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Date == nil && p.Instrument == nil && p.Piece == nil &&
		p.DurationMinutes == nil && p.Notes == nil
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	Instrument string // case-insensitive exact match
	Since      string // inclusive lower bound, YYYY-MM-DD
}
