package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Yahoo! identifiers are dot-delimited compound keys:
//
//	team key:   <game#>.l.<league#>.t.<team#>   e.g. 388.l.27081.t.9
//	league id:  <game#>.l.<league#>             e.g. 388.l.27081
//	player key: <game#>.p.<player#>             e.g. 388.p.10730
//
// These are echoed back to the service in subsequent requests, so the exact
// formats must be preserved.

var playerKeyRegex = regexp.MustCompile(`^\d+\.p\.(\d+)$`)

// LeagueIDFromTeamKey extracts the league id portion of a team key by
// truncating at the ".t." delimiter.
func LeagueIDFromTeamKey(teamKey string) (string, error) {
	idx := strings.Index(teamKey, ".t.")
	if idx <= 0 {
		return "", &MalformedIdentifierError{Key: teamKey}
	}
	return teamKey[:idx], nil
}

// GamePrefix returns the leading game id of a league id or team key, e.g.
// "388" for "388.l.27081".
func GamePrefix(id string) (string, error) {
	idx := strings.Index(id, ".")
	if idx <= 0 {
		return "", &MalformedIdentifierError{Key: id}
	}
	return id[:idx], nil
}

// PlayerIDFromKey reduces a player key of the form <prefix>.p.<digits> to the
// trailing integer. Callers typically drop rows with malformed keys rather
// than failing the whole response.
func PlayerIDFromKey(playerKey string) (int, error) {
	m := playerKeyRegex.FindStringSubmatch(playerKey)
	if m == nil {
		return 0, &MalformedIdentifierError{Key: playerKey}
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &MalformedIdentifierError{Key: playerKey}
	}
	return id, nil
}

// PlayerKey builds a player key from a game prefix and a player id.
func PlayerKey(gamePrefix string, playerID int) string {
	return fmt.Sprintf("%s.p.%d", gamePrefix, playerID)
}
