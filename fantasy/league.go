package fantasy

import (
	"time"

	"github.com/itbasis/go-clock"

	"github.com/spilchen/yahoo-fantasy-api/model"
	"github.com/spilchen/yahoo-fantasy-api/normalize"
	"github.com/spilchen/yahoo-fantasy-api/transport"
)

// League is the facade for a single fantasy league.
//
// Values that are immutable for a session (settings, stat categories, roster
// slots) or rarely changing (current week, week date ranges, free agents per
// position, player details) are fetched once and cached on the instance.
// There is no invalidation; a long-lived League keeps serving the answers it
// first saw. A League is not safe for concurrent use; callers that share one
// across goroutines must serialize access themselves.
type League struct {
	rq       transport.Requester
	leagueID string
	clk      clock.Clock

	settings       model.Settings
	statCategories []model.StatCategory
	positions      []model.PositionSlot
	statIDs        map[int]string
	teamKey        string
	editDate       time.Time
	haveEditDate   bool

	weekDates       map[int]dateRange
	freeAgents      map[string][]model.Player
	detailsByID     map[int]map[string]any
	detailsBySearch map[string][]map[string]any
}

type dateRange struct {
	start time.Time
	end   time.Time
}

// NewLeague builds a League facade over an existing session.
func NewLeague(rq transport.Requester, leagueID string) *League {
	return NewLeagueWithClock(rq, leagueID, clock.New())
}

// NewLeagueWithClock is NewLeague with an injectable clock, used by tests to
// pin the current date.
func NewLeagueWithClock(rq transport.Requester, leagueID string, clk clock.Clock) *League {
	return &League{
		rq:              rq,
		leagueID:        leagueID,
		clk:             clk,
		weekDates:       make(map[int]dateRange),
		freeAgents:      make(map[string][]model.Player),
		detailsByID:     make(map[int]map[string]any),
		detailsBySearch: make(map[string][]map[string]any),
	}
}

// ID returns the league id this facade was built for.
func (l *League) ID() string {
	return l.leagueID
}

// ToTeam builds a Team facade sharing this league's session.
func (l *League) ToTeam(teamKey string) *Team {
	return NewTeam(l.rq, teamKey)
}

// Settings returns the league-wide configuration. Fetched once per League.
func (l *League) Settings() (model.Settings, error) {
	if l.settings != nil {
		return l.settings, nil
	}
	doc, err := l.rq.Get(transport.SettingsPath(l.leagueID))
	if err != nil {
		return nil, err
	}
	settings, err := normalize.Settings(doc)
	if err != nil {
		return nil, err
	}
	l.settings = settings
	return settings, nil
}

// CurrentWeek returns the league's current scoring week.
func (l *League) CurrentWeek() (int, error) {
	settings, err := l.Settings()
	if err != nil {
		return 0, err
	}
	return normalize.IntValue(settings["current_week"])
}

// EndWeek returns the last scoring week of the season.
func (l *League) EndWeek() (int, error) {
	settings, err := l.Settings()
	if err != nil {
		return 0, err
	}
	return normalize.IntValue(settings["end_week"])
}

// StatCategories returns the league's scoring categories. Fetched once per
// League.
func (l *League) StatCategories() ([]model.StatCategory, error) {
	if l.statCategories != nil {
		return l.statCategories, nil
	}
	doc, err := l.rq.Get(transport.SettingsPath(l.leagueID))
	if err != nil {
		return nil, err
	}
	cats, err := normalize.StatCategories(doc)
	if err != nil {
		return nil, err
	}
	l.statCategories = cats
	return cats, nil
}

// Positions returns the league's roster slot configuration. Fetched once per
// League.
func (l *League) Positions() ([]model.PositionSlot, error) {
	if l.positions != nil {
		return l.positions, nil
	}
	doc, err := l.rq.Get(transport.SettingsPath(l.leagueID))
	if err != nil {
		return nil, err
	}
	slots, err := normalize.Positions(doc)
	if err != nil {
		return nil, err
	}
	l.positions = slots
	return slots, nil
}

// EditDate returns the next date roster edits take effect. Fetched once per
// League.
func (l *League) EditDate() (time.Time, error) {
	if l.haveEditDate {
		return l.editDate, nil
	}
	doc, err := l.rq.Get(transport.SettingsPath(l.leagueID))
	if err != nil {
		return time.Time{}, err
	}
	d, err := normalize.EditDate(doc)
	if err != nil {
		return time.Time{}, err
	}
	l.editDate = d
	l.haveEditDate = true
	return d, nil
}

// Standings returns the teams in standings order; the first entry is the
// first-place team.
func (l *League) Standings() ([]model.StandingsEntry, error) {
	doc, err := l.rq.Get(transport.StandingsPath(l.leagueID))
	if err != nil {
		return nil, err
	}
	return normalize.Standings(doc)
}

// Teams returns every team in the league, keyed by team key.
func (l *League) Teams() (model.TeamSummary, error) {
	doc, err := l.rq.Get(transport.TeamsPath(l.leagueID))
	if err != nil {
		return nil, err
	}
	return normalize.Teams(doc)
}

// TeamKey returns the logged-in user's team key within this league. Fetched
// once per League.
func (l *League) TeamKey() (string, error) {
	if l.teamKey != "" {
		return l.teamKey, nil
	}
	doc, err := l.rq.Get(transport.UserTeamsPath())
	if err != nil {
		return "", err
	}
	key, err := normalize.TeamKeyForLeague(doc, l.leagueID)
	if err != nil {
		return "", err
	}
	l.teamKey = key
	return key, nil
}

// WeekDateRange returns the start and end dates of a scoring week. Ranges
// are only available from the service for weeks whose matchups are
// determined, so requests are limited to already-played or current weeks
// plus the next week, which is extrapolated from the current week's end
// date.
func (l *League) WeekDateRange(week int) (time.Time, time.Time, error) {
	current, err := l.CurrentWeek()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	switch {
	case week <= current || week == 1:
		return l.playedWeekDateRange(week)
	case week == current+1:
		_, curEnd, err := l.playedWeekDateRange(current)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return curEnd.AddDate(0, 0, 1), curEnd.AddDate(0, 0, 7), nil
	default:
		return time.Time{}, time.Time{}, &model.OutOfRangeWeekError{Requested: week, Current: current}
	}
}

func (l *League) playedWeekDateRange(week int) (time.Time, time.Time, error) {
	if r, ok := l.weekDates[week]; ok {
		return r.start, r.end, nil
	}
	doc, err := l.rq.Get(transport.ScoreboardPath(l.leagueID, week))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end, err := normalize.WeekDateRange(doc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	l.weekDates[week] = dateRange{start: start, end: end}
	return start, end, nil
}

// Matchups returns the raw scoreboard document for a week. A week of 0
// requests the current week.
func (l *League) Matchups(week int) (map[string]any, error) {
	return l.rq.Get(transport.ScoreboardPath(l.leagueID, week))
}

// FreeAgents returns every free agent eligible at the given position. The
// result is cached per position for the lifetime of the League.
func (l *League) FreeAgents(position string) ([]model.Player, error) {
	key := "FA:" + position
	if cached, ok := l.freeAgents[key]; ok {
		return cached, nil
	}
	players, err := l.fetchPlayers("FA", position)
	if err != nil {
		return nil, err
	}
	l.freeAgents[key] = players
	return players, nil
}

// Waivers returns every player currently on waivers.
func (l *League) Waivers() ([]model.Player, error) {
	return l.fetchPlayers("W", "")
}

// TakenPlayers returns every player on a team's roster in this league.
func (l *League) TakenPlayers() ([]model.Player, error) {
	return l.fetchPlayers("T", "")
}

// DraftResults returns the league's draft picks in pick order.
func (l *League) DraftResults() ([]model.DraftResult, error) {
	doc, err := l.rq.Get(transport.DraftResultsPath(l.leagueID))
	if err != nil {
		return nil, err
	}
	return normalize.DraftResults(doc)
}

// Transactions returns league transactions of the given comma-separated
// types (add,drop,commish,trade). An empty count returns everything.
func (l *League) Transactions(tranTypes, count string) ([]model.Transaction, error) {
	doc, err := l.rq.Get(transport.TransactionsPath(l.leagueID, tranTypes, count))
	if err != nil {
		return nil, err
	}
	return normalize.Transactions(doc)
}

// TeamTransactions returns a team's waiver claims or pending trades.
func (l *League) TeamTransactions(teamKey, tranType string) ([]model.Transaction, error) {
	doc, err := l.rq.Get(transport.TeamTransactionsPath(l.leagueID, teamKey, tranType))
	if err != nil {
		return nil, err
	}
	return normalize.Transactions(doc)
}

// PercentOwned returns the cross-league ownership percentage for the given
// player ids.
func (l *League) PercentOwned(playerIDs []int) ([]model.PercentOwnedInfo, error) {
	var out []model.PercentOwnedInfo
	for _, chunk := range chunkIDs(playerIDs) {
		uri, err := transport.PercentOwnedPath(l.leagueID, chunk)
		if err != nil {
			return nil, err
		}
		doc, err := l.rq.Get(uri)
		if err != nil {
			return nil, err
		}
		page, err := normalize.PercentOwned(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
	}
	return out, nil
}

// Ownership returns who owns each of the given players within this league.
func (l *League) Ownership(playerIDs []int) (map[int]model.OwnershipInfo, error) {
	out := make(map[int]model.OwnershipInfo, len(playerIDs))
	for _, chunk := range chunkIDs(playerIDs) {
		uri, err := transport.OwnershipPath(l.leagueID, chunk)
		if err != nil {
			return nil, err
		}
		doc, err := l.rq.Get(uri)
		if err != nil {
			return nil, err
		}
		page, err := normalize.Ownership(doc)
		if err != nil {
			return nil, err
		}
		for id, info := range page {
			out[id] = info
		}
	}
	return out, nil
}

// statIDMap returns the merged stat-id to display-name mapping for this
// league: the static defaults for the sport, overridden by the names the
// league actually configures.
func (l *League) statIDMap() (map[int]string, error) {
	if l.statIDs != nil {
		return l.statIDs, nil
	}
	settings, err := l.Settings()
	if err != nil {
		return nil, err
	}
	cats, err := l.StatCategories()
	if err != nil {
		return nil, err
	}
	l.statIDs = normalize.StatIDMap(normalize.StringValue(settings["game_code"]), cats)
	return l.statIDs, nil
}
