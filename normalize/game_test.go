package normalize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spilchen/yahoo-fantasy-api/model"
)

func TestGameInfo(t *testing.T) {
	info, err := GameInfo(fixture(t, "game.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.GameInfo{GameID: "388", GameKey: "388", Code: "mlb", Name: "Baseball", Season: "2019"}
	if info != want {
		t.Errorf("got %+v, want %+v", info, want)
	}
}

func TestLeagueIDsFiltersByGameAndSeason(t *testing.T) {
	doc := fixture(t, "users_teams.json")

	ids, err := LeagueIDs(doc, "mlb", 2019)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"388.l.27081", "388.l.51222"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("got %v, want %v", ids, want)
	}

	// Year 0 spans every season.
	all, err := LeagueIDs(doc, "nhl", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(all, []string{"396.l.21484"}) {
		t.Errorf("got %v, want the nhl league", all)
	}

	none, err := LeagueIDs(doc, "mlb", 2018)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %v, want no leagues for 2018", none)
	}
}

func TestTeamKeyForLeague(t *testing.T) {
	doc := fixture(t, "users_teams.json")
	key, err := TeamKeyForLeague(doc, "388.l.27081")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "388.l.27081.t.2" {
		t.Errorf("got %q, want 388.l.27081.t.2", key)
	}

	if _, err := TeamKeyForLeague(doc, "388.l.99999"); err == nil {
		t.Error("expected an error for a league the user is not in")
	}
}

func TestMatchupOpponent(t *testing.T) {
	doc := fixture(t, "matchup.json")
	opp, err := MatchupOpponent(doc, "388.l.27081.t.2", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opp != "388.l.27081.t.5" {
		t.Errorf("got %q, want 388.l.27081.t.5", opp)
	}
}

func TestMatchupOpponentNotFound(t *testing.T) {
	doc := parseDoc(t, `{"fantasy_content": {"team": [[], {"matchups": {"count": 0}}]}}`)
	_, err := MatchupOpponent(doc, "388.l.27081.t.2", 25)
	var notFound *model.OpponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want an OpponentNotFoundError", err)
	}
	if notFound.Week != 25 {
		t.Errorf("error week = %d, want 25", notFound.Week)
	}
}

func TestStatIDMapLeagueNamesWin(t *testing.T) {
	cats := []model.StatCategory{
		{StatID: 42, DisplayName: "K", PositionType: "P"},
		{StatID: 7, DisplayName: "R", PositionType: "B"},
	}
	m := StatIDMap("mlb", cats)
	// The static table calls 42 "SO"; the league's configured name wins.
	if got := m[42]; got != "K" {
		t.Errorf("stat 42 = %q, want the league name K", got)
	}
	// Unscored ids keep their static names.
	if got := m[50]; got != "IP" {
		t.Errorf("stat 50 = %q, want the static name IP", got)
	}

	if len(StatIDMap("curling", nil)) != 0 {
		t.Error("an unknown game code should produce an empty map")
	}
}
