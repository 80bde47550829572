package fantasy

import (
	"time"

	"github.com/spilchen/yahoo-fantasy-api/model"
	"github.com/spilchen/yahoo-fantasy-api/normalize"
	"github.com/spilchen/yahoo-fantasy-api/transport"
)

// Team is the facade for one team within a league. Mutating operations are
// not idempotent; issuing the same add twice submits two transactions.
type Team struct {
	rq      transport.Requester
	teamKey string
}

// NewTeam builds a Team facade over an existing session.
func NewTeam(rq transport.Requester, teamKey string) *Team {
	return &Team{rq: rq, teamKey: teamKey}
}

// Key returns the team key this facade was built for.
func (t *Team) Key() string {
	return t.teamKey
}

// ToLeague builds the League facade this team belongs to, sharing the same
// session.
func (t *Team) ToLeague() (*League, error) {
	leagueID, err := model.LeagueIDFromTeamKey(t.teamKey)
	if err != nil {
		return nil, err
	}
	return NewLeague(t.rq, leagueID), nil
}

// Roster returns the team's roster for a week (week > 0), a date (non-zero
// day), or the current day.
func (t *Team) Roster(week int, day time.Time) ([]model.RosterEntry, error) {
	doc, err := t.rq.Get(transport.RosterPath(t.teamKey, week, day))
	if err != nil {
		return nil, err
	}
	return normalize.Roster(doc)
}

// Matchup returns the key of the team this team plays in the given week.
func (t *Team) Matchup(week int) (string, error) {
	doc, err := t.rq.Get(transport.MatchupPath(t.teamKey, week))
	if err != nil {
		return "", err
	}
	return normalize.MatchupOpponent(doc, t.teamKey, week)
}

// Details returns the team's attribute map (name, logos, manager info, ...).
func (t *Team) Details() (map[string]any, error) {
	doc, err := t.rq.Get(transport.TeamPath(t.teamKey))
	if err != nil {
		return nil, err
	}
	return normalize.TeamDetails(doc)
}

// AddPlayer submits an add transaction for the given player.
func (t *Team) AddPlayer(playerID int) error {
	return t.rosterTransaction(addDropBody(t.teamKey, playerID, -1))
}

// DropPlayer submits a drop transaction for the given player.
func (t *Team) DropPlayer(playerID int) error {
	return t.rosterTransaction(addDropBody(t.teamKey, -1, playerID))
}

// AddAndDropPlayers submits a single transaction adding one player and
// dropping another.
func (t *Team) AddAndDropPlayers(addID, dropID int) error {
	return t.rosterTransaction(addDropBody(t.teamKey, addID, dropID))
}

func (t *Team) rosterTransaction(build func(gamePrefix string) (string, error)) error {
	leagueID, err := model.LeagueIDFromTeamKey(t.teamKey)
	if err != nil {
		return err
	}
	prefix, err := model.GamePrefix(leagueID)
	if err != nil {
		return err
	}
	body, err := build(prefix)
	if err != nil {
		return err
	}
	return t.rq.Post(transport.TransactionsMutationPath(leagueID), body)
}

// ChangePositions moves players to new roster slots for the given date.
// modified maps player id to the new position code.
func (t *Team) ChangePositions(day time.Time, modified map[int]string) error {
	leagueID, err := model.LeagueIDFromTeamKey(t.teamKey)
	if err != nil {
		return err
	}
	prefix, err := model.GamePrefix(leagueID)
	if err != nil {
		return err
	}
	body, err := changePositionsBody(prefix, day, modified)
	if err != nil {
		return err
	}
	return t.rq.Put(transport.RosterMutationPath(t.teamKey), body)
}

// ProposedTrades returns the pending trades involving this team.
func (t *Team) ProposedTrades() ([]model.Transaction, error) {
	leagueID, err := model.LeagueIDFromTeamKey(t.teamKey)
	if err != nil {
		return nil, err
	}
	doc, err := t.rq.Get(transport.TeamTransactionsPath(leagueID, t.teamKey, "pending_trade"))
	if err != nil {
		return nil, err
	}
	return normalize.Transactions(doc)
}

// AcceptTrade accepts a pending trade, with an optional note back to the
// proposing manager.
func (t *Team) AcceptTrade(transactionKey, tradeNote string) error {
	body, err := tradeActionBody(transactionKey, "accept", tradeNote)
	if err != nil {
		return err
	}
	return t.rq.Put(transport.TransactionPath(transactionKey), body)
}

// RejectTrade rejects a pending trade.
func (t *Team) RejectTrade(transactionKey, tradeNote string) error {
	body, err := tradeActionBody(transactionKey, "reject", tradeNote)
	if err != nil {
		return err
	}
	return t.rq.Put(transport.TransactionPath(transactionKey), body)
}
