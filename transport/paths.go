package transport

import (
	"fmt"
	"strings"
	"time"

	"github.com/spilchen/yahoo-fantasy-api/model"
)

// Path builders. These produce the URI fragment passed to Requester.Get and
// friends. Yahoo! uses semicolon-delimited matrix parameters rather than
// query strings.

func StandingsPath(leagueID string) string {
	return fmt.Sprintf("league/%s/standings", leagueID)
}

func SettingsPath(leagueID string) string {
	return fmt.Sprintf("league/%s/settings", leagueID)
}

func TeamsPath(leagueID string) string {
	return fmt.Sprintf("league/%s/teams", leagueID)
}

// ScoreboardPath returns the scoreboard URI. A week of 0 requests the
// current week's scoreboard.
func ScoreboardPath(leagueID string, week int) string {
	if week == 0 {
		return fmt.Sprintf("league/%s/scoreboard", leagueID)
	}
	return fmt.Sprintf("league/%s/scoreboard;week=%d", leagueID, week)
}

func MatchupPath(teamKey string, week int) string {
	return fmt.Sprintf("team/%s/matchups;weeks=%d", teamKey, week)
}

// RosterPath returns the roster URI for a given week, a given date, or (when
// week is 0 and day is the zero time) the current day.
func RosterPath(teamKey string, week int, day time.Time) string {
	if week != 0 {
		return fmt.Sprintf("team/%s/roster;week=%d", teamKey, week)
	}
	if !day.IsZero() {
		return fmt.Sprintf("team/%s/roster;date=%s", teamKey, day.Format(time.DateOnly))
	}
	return fmt.Sprintf("team/%s/roster", teamKey)
}

func TeamPath(teamKey string) string {
	return fmt.Sprintf("team/%s", teamKey)
}

// PlayersPath returns the paged player listing URI. The output is paged at
// 25 players; start selects the page. Status filters the player pool: 'A'
// all available, 'FA' free agents, 'W' waivers, 'T' taken, 'K' keepers.
// An empty position applies no position filter.
func PlayersPath(leagueID string, start int, status, position string) string {
	posParam := ""
	if position != "" {
		posParam = fmt.Sprintf(";position=%s", position)
	}
	return fmt.Sprintf("league/%s/players;start=%d;count=25;status=%s%s/percent_owned",
		leagueID, start, status, posParam)
}

// PlayerSearchPath returns the player detail URI for a full or partial name
// search.
func PlayerSearchPath(leagueID, search string) string {
	return fmt.Sprintf("league/%s/players;search=%s/stats", leagueID, search)
}

// PlayerKeysPath returns the player detail URI for a set of player ids. The
// ids are turned into player keys using the league's game prefix.
func PlayerKeysPath(leagueID string, ids []int) (string, error) {
	keys, err := joinPlayerKeys(leagueID, ids)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("league/%s/players;player_keys=%s/stats", leagueID, keys), nil
}

func PercentOwnedPath(leagueID string, ids []int) (string, error) {
	keys, err := joinPlayerKeys(leagueID, ids)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("league/%s/players;player_keys=%s/percent_owned", leagueID, keys), nil
}

func OwnershipPath(leagueID string, ids []int) (string, error) {
	keys, err := joinPlayerKeys(leagueID, ids)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("league/%s/players;player_keys=%s/ownership", leagueID, keys), nil
}

// TransactionsPath returns the league transactions URI. types is a
// comma-separated list drawn from add,drop,commish,trade. An empty count
// returns all transactions.
func TransactionsPath(leagueID, types, count string) string {
	return fmt.Sprintf("league/%s/transactions;types=%s;count=%s", leagueID, types, count)
}

// TeamTransactionsPath returns the URI for a team's transactions of a given
// type. Valid types are waiver and pending_trade.
func TeamTransactionsPath(leagueID, teamKey, tranType string) string {
	return fmt.Sprintf("league/%s/transactions;team_key=%s;type=%s", leagueID, teamKey, tranType)
}

func TransactionPath(transactionKey string) string {
	return "transaction/" + transactionKey
}

func DraftResultsPath(leagueID string) string {
	return fmt.Sprintf("league/%s/draftresults", leagueID)
}

func GamePath(gameCode string) string {
	return fmt.Sprintf("game/%s", gameCode)
}

// UserTeamsPath returns the URI listing every game and team the logged-in
// user participates in.
func UserTeamsPath() string {
	return "users;use_login=1/games/teams"
}

func RosterMutationPath(teamKey string) string {
	return fmt.Sprintf("team/%s/roster", teamKey)
}

func TransactionsMutationPath(leagueID string) string {
	return fmt.Sprintf("league/%s/transactions", leagueID)
}

// PlayerStatsPath returns the stats URI for a set of players. reqType
// selects the time range: season, date, lastweek, or lastmonth. The date
// type requires day to be set; for the season type a season of 0 means the
// current season.
func PlayerStatsPath(gameCode string, ids []int, reqType string, day time.Time, season int) (string, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = model.PlayerKey(gameCode, id)
	}
	suffix, err := statsTypeParam(reqType, day, season)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("players;player_keys=%s/stats;%s", strings.Join(keys, ","), suffix), nil
}

func statsTypeParam(reqType string, day time.Time, season int) (string, error) {
	switch reqType {
	case "season":
		if season == 0 {
			return "type=season", nil
		}
		return fmt.Sprintf("type=season;season=%d", season), nil
	case "date":
		return fmt.Sprintf("type=date;date=%s", day.Format(time.DateOnly)), nil
	case "lastweek", "lastmonth":
		return "type=" + reqType, nil
	default:
		return "", &model.UnsupportedLookupError{Reason: "unknown stats request type: " + reqType}
	}
}

func joinPlayerKeys(leagueID string, ids []int) (string, error) {
	prefix, err := model.GamePrefix(leagueID)
	if err != nil {
		return "", err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = model.PlayerKey(prefix, id)
	}
	return strings.Join(keys, ","), nil
}
