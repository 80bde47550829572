// Package fantasy exposes the Yahoo! fantasy object model: a Game for a
// sport, Leagues within a game, and Teams within a league. Each facade holds
// an identifier and a shared transport handle; constructing one performs no
// network traffic.
package fantasy

import (
	"github.com/spilchen/yahoo-fantasy-api/normalize"
	"github.com/spilchen/yahoo-fantasy-api/transport"
)

// Game is the entry point for a sport (mlb, nhl, nfl, nba).
type Game struct {
	rq   transport.Requester
	code string

	gameID string
}

// NewGame builds a Game facade for the given sport code over an existing
// session.
func NewGame(rq transport.Requester, code string) *Game {
	return &Game{rq: rq, code: code}
}

// Code returns the sport code this Game was built for.
func (g *Game) Code() string {
	return g.code
}

// GameID returns Yahoo!'s numeric id for the current season of this sport.
// The value is fetched once and cached for the lifetime of the Game.
func (g *Game) GameID() (string, error) {
	if g.gameID != "" {
		return g.gameID, nil
	}
	doc, err := g.rq.Get(transport.GamePath(g.code))
	if err != nil {
		return "", err
	}
	info, err := normalize.GameInfo(doc)
	if err != nil {
		return "", err
	}
	g.gameID = info.GameID
	return g.gameID, nil
}

// LeagueIDs returns the ids of the leagues the logged-in user plays in for
// this sport. A year of 0 returns leagues from every season.
func (g *Game) LeagueIDs(year int) ([]string, error) {
	doc, err := g.rq.Get(transport.UserTeamsPath())
	if err != nil {
		return nil, err
	}
	return normalize.LeagueIDs(doc, g.code, year)
}

// ToLeague builds a League facade sharing this Game's session.
func (g *Game) ToLeague(leagueID string) *League {
	return NewLeague(g.rq, leagueID)
}
