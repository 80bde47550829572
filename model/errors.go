package model

import "fmt"

// RemoteAPIError is returned when Yahoo! responds with a non-success status
// or an explicit error envelope in the body. The raw payload is kept for
// diagnostics.
type RemoteAPIError struct {
	StatusCode int
	Payload    string
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("yahoo api error (status %d): %s", e.StatusCode, e.Payload)
	}
	return fmt.Sprintf("yahoo api error: %s", e.Payload)
}

// MalformedIdentifierError is returned when a team, league, or player key
// does not match the documented grammar.
type MalformedIdentifierError struct {
	Key string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed identifier: %q", e.Key)
}

// OutOfRangeWeekError is returned when a week date range is requested beyond
// the one-week-ahead horizon.
type OutOfRangeWeekError struct {
	Requested int
	Current   int
}

func (e *OutOfRangeWeekError) Error() string {
	return fmt.Sprintf("cannot request date range for week %d, current week is %d", e.Requested, e.Current)
}

// OpponentNotFoundError is returned when a matchup payload does not contain
// an opposing team. Well-formed leagues should never produce this.
type OpponentNotFoundError struct {
	TeamKey string
	Week    int
}

func (e *OpponentNotFoundError) Error() string {
	return fmt.Sprintf("could not find opponent for %s in week %d", e.TeamKey, e.Week)
}

// UnsupportedLookupError is returned when a lookup is invoked without any of
// its mutually-required filter arguments.
type UnsupportedLookupError struct {
	Reason string
}

func (e *UnsupportedLookupError) Error() string {
	return fmt.Sprintf("unsupported lookup: %s", e.Reason)
}
