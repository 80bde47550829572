package fantasy

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/spilchen/yahoo-fantasy-api/model"
	"github.com/spilchen/yahoo-fantasy-api/testutils"
	"github.com/spilchen/yahoo-fantasy-api/transport"
)

func newTestLeague(t *testing.T) (*testutils.FakeYahooServer, *League) {
	t.Helper()
	srv := testutils.NewFakeYahooServer()
	t.Cleanup(srv.Close)
	sess := transport.NewSessionForTest(srv.URL(), nil)
	return srv, NewLeague(sess, testutils.LeagueID)
}

func TestSettingsFetchedOnce(t *testing.T) {
	srv, l := newTestLeague(t)

	settings, err := l.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := settings["name"]; got != "Buck you're next!" {
		t.Errorf("name = %v, want Buck you're next!", got)
	}

	week, err := l.CurrentWeek()
	if err != nil || week != testutils.CurrentWeek {
		t.Errorf("current week = %d (err %v), want %d", week, err, testutils.CurrentWeek)
	}
	end, err := l.EndWeek()
	if err != nil || end != 24 {
		t.Errorf("end week = %d (err %v), want 24", end, err)
	}

	if got := srv.Requests("/fantasy/v2/league/" + testutils.LeagueID + "/settings"); got != 1 {
		t.Errorf("settings fetched %d times, want 1", got)
	}
}

func TestStatCategoriesAndPositionsCached(t *testing.T) {
	srv, l := newTestLeague(t)

	for i := 0; i < 2; i++ {
		cats, err := l.StatCategories()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cats) != 12 {
			t.Errorf("got %d categories, want 12", len(cats))
		}
		slots, err := l.Positions()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 10 {
			t.Errorf("got %d slots, want 10", len(slots))
		}
	}

	// One fetch per accessor, not per call.
	if got := srv.Requests("/fantasy/v2/league/" + testutils.LeagueID + "/settings"); got != 2 {
		t.Errorf("settings fetched %d times, want 2", got)
	}
}

func TestEditDate(t *testing.T) {
	_, l := newTestLeague(t)
	d, err := l.EditDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Format(time.DateOnly); got != "2019-07-04" {
		t.Errorf("edit date = %s, want 2019-07-04", got)
	}
}

func TestStandings(t *testing.T) {
	_, l := newTestLeague(t)
	standings, err := l.Standings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(standings) != 3 || standings[0].Name != "Lumber Kings" {
		t.Errorf("got %+v, want Lumber Kings on top of 3", standings)
	}
}

func TestTeamKeyFetchedOnce(t *testing.T) {
	srv, l := newTestLeague(t)
	for i := 0; i < 2; i++ {
		key, err := l.TeamKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != testutils.TeamKey {
			t.Errorf("team key = %q, want %q", key, testutils.TeamKey)
		}
	}
	if got := srv.Requests("/fantasy/v2/users;use_login=1/games/teams"); got != 1 {
		t.Errorf("user teams fetched %d times, want 1", got)
	}
}

func TestWeekDateRange(t *testing.T) {
	srv, l := newTestLeague(t)

	start, end, err := l.WeekDateRange(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format(time.DateOnly) != "2019-03-20" || end.Format(time.DateOnly) != "2019-03-31" {
		t.Errorf("week 1 = %v..%v, want 2019-03-20..2019-03-31", start, end)
	}

	start, end, err = l.WeekDateRange(testutils.CurrentWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format(time.DateOnly) != "2019-06-17" || end.Format(time.DateOnly) != "2019-06-23" {
		t.Errorf("week 12 = %v..%v, want 2019-06-17..2019-06-23", start, end)
	}

	// Next week's range is extrapolated from the current week's end date.
	start, end, err = l.WeekDateRange(testutils.CurrentWeek + 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format(time.DateOnly) != "2019-06-24" || end.Format(time.DateOnly) != "2019-06-30" {
		t.Errorf("week 13 = %v..%v, want 2019-06-24..2019-06-30", start, end)
	}

	_, _, err = l.WeekDateRange(testutils.CurrentWeek + 2)
	var outOfRange *model.OutOfRangeWeekError
	if !errors.As(err, &outOfRange) {
		t.Fatalf("got %v, want an OutOfRangeWeekError", err)
	}
	if outOfRange.Requested != 14 || outOfRange.Current != 12 {
		t.Errorf("error = %+v, want requested 14 current 12", outOfRange)
	}

	// Played weeks are cached; the extrapolation above already fetched
	// week 12 once.
	if got := srv.Requests("/fantasy/v2/league/" + testutils.LeagueID + "/scoreboard;week=12"); got != 1 {
		t.Errorf("week 12 scoreboard fetched %d times, want 1", got)
	}
}

func TestFreeAgentsPaged(t *testing.T) {
	srv, l := newTestLeague(t)

	players, err := l.FreeAgents("C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 57 {
		t.Fatalf("got %d free agents, want 57", len(players))
	}
	if players[0].PlayerID != 7000 || players[56].PlayerID != 7056 {
		t.Errorf("ids span %d..%d, want 7000..7056", players[0].PlayerID, players[56].PlayerID)
	}
	if players[26].PercentOwned != 26 {
		t.Errorf("player 26 percent owned = %d, want 26", players[26].PercentOwned)
	}

	// 25 + 25 + 7, then the empty page that ends the walk.
	wantStarts := []int{0, 25, 50, 57}
	if got := srv.PlayerPageStarts(); len(got) != len(wantStarts) {
		t.Fatalf("page starts = %v, want %v", got, wantStarts)
	} else {
		for i := range wantStarts {
			if got[i] != wantStarts[i] {
				t.Fatalf("page starts = %v, want %v", got, wantStarts)
			}
		}
	}

	// A second lookup for the same position is served from cache.
	if _, err := l.FreeAgents("C"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := srv.PlayerPageStarts(); len(got) != 4 {
		t.Errorf("cached lookup made %d extra requests", len(got)-4)
	}
}

func TestWaiversAndTakenPlayers(t *testing.T) {
	_, l := newTestLeague(t)

	waivers, err := l.Waivers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waivers) != 3 {
		t.Errorf("got %d waiver players, want 3", len(waivers))
	}

	taken, err := l.TakenPlayers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(taken) != 50 {
		t.Errorf("got %d taken players, want 50", len(taken))
	}
}

func TestFreeAgentsEmptyPool(t *testing.T) {
	rq := testutils.NewCannedRequester()
	empty := map[string]any{
		"fantasy_content": map[string]any{
			"league": []any{
				map[string]any{"league_key": testutils.LeagueID},
				map[string]any{"players": []any{}},
			},
		},
	}
	rq.Register("players;", empty)

	l := NewLeague(rq, testutils.LeagueID)
	players, err := l.FreeAgents("C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("got %d players, want none", len(players))
	}
	// An empty first page ends the walk after a single request.
	if len(rq.GetURIs) != 1 {
		t.Errorf("made %d requests, want 1", len(rq.GetURIs))
	}
}

func TestDraftResults(t *testing.T) {
	_, l := newTestLeague(t)
	results, err := l.DraftResults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d picks, want 2 after dropping the malformed key", len(results))
	}
}

func TestTransactions(t *testing.T) {
	_, l := newTestLeague(t)
	trans, err := l.Transactions("trade,add", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trans) != 2 {
		t.Errorf("got %d transactions, want 2", len(trans))
	}
}

func TestPercentOwnedAndOwnership(t *testing.T) {
	_, l := newTestLeague(t)

	owned, err := l.PercentOwned([]int{8857, 11232})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(owned) != 2 || owned[0].PercentOwned != 83 {
		t.Errorf("got %+v, want Posey at 83", owned)
	}

	owners, err := l.Ownership([]int{8857, 11232})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owners[8857].OwnerTeamKey != testutils.TeamKey {
		t.Errorf("got %+v, want Posey owned by %s", owners[8857], testutils.TeamKey)
	}
}

func TestPlayerStatsUseLeagueStatNames(t *testing.T) {
	_, l := newTestLeague(t)

	records, err := l.PlayerStats([]int{8857, 10730}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if got := records[0].Stats["AVG"]; got != 0.257 {
		t.Errorf("AVG = %v, want 0.257", got)
	}
	// The league settings rename stat 42 from the static SO to K.
	if got := records[1].Stats["K"]; got != float64(101) {
		t.Errorf("K = %v, want 101", got)
	}
	if _, ok := records[1].Stats["SO"]; ok {
		t.Error("the static stat name should be overridden by the league's")
	}
}

func TestPlayerStatsForDateDefaultsToToday(t *testing.T) {
	rq := testutils.NewCannedRequester()
	settings, err := testutils.Fixture("settings.json")
	if err != nil {
		t.Fatalf("error loading fixture: %v", err)
	}
	stats, err := testutils.Fixture("player_stats.json")
	if err != nil {
		t.Fatalf("error loading fixture: %v", err)
	}
	rq.Register("settings", settings)
	rq.Register("type=date", stats)

	mock := clock.NewMock()
	mock.Set(time.Date(2019, 7, 1, 10, 30, 0, 0, time.UTC))
	l := NewLeagueWithClock(rq, testutils.LeagueID, mock)

	if _, err := l.PlayerStatsForDate([]int{8857}, time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := rq.GetURIs[len(rq.GetURIs)-1]
	if want := "type=date;date=2019-07-01"; !strings.Contains(last, want) {
		t.Errorf("stats uri = %q, want it to carry %q", last, want)
	}
}

func TestPlayerStatsRequiresIDs(t *testing.T) {
	_, l := newTestLeague(t)
	_, err := l.PlayerStats(nil, 0)
	var unsupported *model.UnsupportedLookupError
	if !errors.As(err, &unsupported) {
		t.Errorf("got %v, want an UnsupportedLookupError", err)
	}
}

func TestErrorEnvelopeSurfacesAsRemoteAPIError(t *testing.T) {
	srv := testutils.NewFakeYahooServer()
	t.Cleanup(srv.Close)
	sess := transport.NewSessionForTest(srv.URL(), nil)

	l := NewLeague(sess, testutils.ErrorLeagueID)
	_, err := l.Settings()
	var apiErr *model.RemoteAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want a RemoteAPIError", err)
	}
	if !strings.Contains(apiErr.Payload, "not") {
		t.Errorf("payload %q should carry the service's description", apiErr.Payload)
	}
}

func TestExpiredCredentialIsRefreshedMidCall(t *testing.T) {
	srv := testutils.NewFakeYahooServer()
	t.Cleanup(srv.Close)
	renews := 0
	sess := transport.NewSessionForTest(srv.URL(), func() (string, error) {
		renews++
		return "fresh-token", nil
	})

	l := NewLeague(sess, testutils.ExpiredLeagueID)
	if _, err := l.Settings(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renews != 1 {
		t.Errorf("renewed %d times, want 1", renews)
	}
}

func TestBatchLookupsAreChunked(t *testing.T) {
	rq := testutils.NewCannedRequester()
	doc, err := testutils.Fixture("percent_owned.json")
	if err != nil {
		t.Fatalf("error loading fixture: %v", err)
	}
	rq.Register("percent_owned", doc)

	ids := make([]int, 30)
	for i := range ids {
		ids[i] = 7000 + i
	}
	l := NewLeague(rq, testutils.LeagueID)
	if _, err := l.PercentOwned(ids); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rq.GetURIs) != 2 {
		t.Fatalf("made %d requests for 30 ids, want 2", len(rq.GetURIs))
	}
	if !strings.Contains(rq.GetURIs[0], "388.p.7024") || strings.Contains(rq.GetURIs[0], "388.p.7025") {
		t.Errorf("first chunk %q should end at id 7024", rq.GetURIs[0])
	}
}
