package domain

import (
	"encoding/json"
	"fmt"
)

// StatusKind identifies which search-status message to show.
type StatusKind int

const (
	StatusNotLoaded StatusKind = iota
	StatusNoData
	StatusShowingAll
	StatusMatches
	StatusNoMatches
	StatusReset
)

var statusKindNames = map[StatusKind]string{
	StatusNotLoaded:  "not_loaded",
	StatusNoData:     "no_data",
	StatusShowingAll: "showing_all",
	StatusMatches:    "matches",
	StatusNoMatches:  "no_matches",
	StatusReset:      "reset",
}

func (k StatusKind) String() string {
	if s, ok := statusKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("StatusKind(%d)", int(k))
}

// Status summarizes the last catalog operation for display.
type Status struct {
	Kind  StatusKind
	Count int
}

// Message returns the user-facing status line.
func (s Status) Message() string {
	switch s.Kind {
	case StatusNoData:
		return "No PCM data loaded."
	case StatusShowingAll:
		return "Showing all PCMs (no filters applied yet)."
	case StatusMatches:
		return fmt.Sprintf("Search completed: %d PCM(s) found.", s.Count)
	case StatusNoMatches:
		return "Search completed: no matching PCMs."
	case StatusReset:
		return "Filters reset: showing all PCMs."
	default:
		return "PCM data not loaded yet."
	}
}

// MarshalJSON encodes the kind, count and rendered message.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Count   int    `json:"count"`
		Message string `json:"message"`
	}{s.Kind.String(), s.Count, s.Message()})
}
