package model

// Tally is a minutes total keyed by instrument or piece.
type Tally struct {
	Name    string `json:"name" yaml:"name"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// WeeklySummary covers the current Monday-start week up to and including today.
type WeeklySummary struct {
	StartDate    string  `json:"start_date" yaml:"start_date"`
	EndDate      string  `json:"end_date" yaml:"end_date"`
	TotalMinutes int     `json:"total_minutes" yaml:"total_minutes"`
	ByInstrument []Tally `json:"minutes_by_instrument" yaml:"minutes_by_instrument"`
	TopPieces    []Tally `json:"top_pieces" yaml:"top_pieces"`
	SessionCount int     `json:"session_count" yaml:"session_count"`
}
