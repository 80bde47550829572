package testutils

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Identifiers the canned fixtures are built around.
const (
	LeagueID    = "388.l.27081"
	TeamKey     = "388.l.27081.t.2"
	GameCode    = "mlb"
	CurrentWeek = 12
)

// Leagues with special transport behavior, used to exercise the error and
// credential-refresh paths.
const (
	ErrorLeagueID   = "998.l.88888"
	ExpiredLeagueID = "999.l.99999"
)

//go:embed yahoodata
var yahoodata embed.FS

// FakeYahooServer serves canned Yahoo! fantasy responses for tests. The
// player listing endpoint is generated rather than canned so it can honor
// the ;start= parameter and exercise real pagination.
type FakeYahooServer struct {
	s *httptest.Server

	mu           sync.Mutex
	requests     map[string]int
	playerStarts []int
	expiredHits  int
}

func NewFakeYahooServer() *FakeYahooServer {
	f := &FakeYahooServer{requests: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(f.countRequests)
	r.Route("/fantasy/v2", func(r chi.Router) {
		r.Get("/users;use_login=1/games/teams", serveFile("users_teams.json"))
		r.Get("/game/{gameCode}", serveFile("game.json"))
		r.Get("/{playerKeys}/{stats}", serveFile("player_stats.json"))
		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/standings", f.leagueHandler(serveFile("standings.json")))
			r.Get("/settings", f.leagueHandler(serveFile("settings.json")))
			r.Get("/teams", f.leagueHandler(serveFile("teams.json")))
			r.Get("/draftresults", f.leagueHandler(serveFile("draftresults.json")))
			r.Get("/{resource}", f.leagueResourceHandler)
			r.Get("/{resource}/percent_owned", f.percentOwnedHandler)
			r.Get("/{resource}/ownership", serveFile("ownership.json"))
			r.Get("/{resource}/stats", serveFile("player_details.json"))
			r.Post("/transactions", statusHandler(http.StatusCreated))
		})
		r.Route("/team/{teamKey}", func(r chi.Router) {
			r.Get("/", serveFile("matchup.json"))
			r.Get("/{resource}", teamResourceHandler)
			r.Put("/roster", statusHandler(http.StatusOK))
		})
		r.Put("/transaction/{key}", statusHandler(http.StatusOK))
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeYahooServer) Close() {
	f.s.Close()
}

// URL returns the base URL tests should hand to the transport.
func (f *FakeYahooServer) URL() string {
	return f.s.URL + "/fantasy/v2"
}

// Requests returns how many times the given request path was hit.
func (f *FakeYahooServer) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

// PlayerPageStarts returns the ;start= offsets of every player listing
// request, in order.
func (f *FakeYahooServer) PlayerPageStarts() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.playerStarts...)
}

func (f *FakeYahooServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests[r.URL.Path]++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// leagueHandler wraps a fixture handler with the per-league transport
// behaviors: an error envelope for ErrorLeagueID and an expired credential
// (first request only) for ExpiredLeagueID.
func (f *FakeYahooServer) leagueHandler(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "leagueID") {
		case ErrorLeagueID:
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(errorEnvelope))
			return
		case ExpiredLeagueID:
			f.mu.Lock()
			f.expiredHits++
			first := f.expiredHits == 1
			f.mu.Unlock()
			if first {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(expiredTokenMessage))
				return
			}
		}
		next(w, r)
	}
}

func (f *FakeYahooServer) leagueResourceHandler(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	switch {
	case strings.HasPrefix(resource, "scoreboard"):
		if matrixParam(resource, "week") == "1" {
			serveFile("scoreboard.week1.json")(w, r)
			return
		}
		serveFile("scoreboard.week12.json")(w, r)
	case strings.HasPrefix(resource, "transactions"):
		serveFile("transactions.json")(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown league resource: " + resource))
	}
}

func teamResourceHandler(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	switch {
	case strings.HasPrefix(resource, "roster"):
		serveFile("roster.json")(w, r)
	case strings.HasPrefix(resource, "matchups"):
		serveFile("matchup.json")(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown team resource: " + resource))
	}
}

// percentOwnedHandler distinguishes the paged player listing from a
// percent_owned lookup by player key. Both URIs end in /percent_owned.
func (f *FakeYahooServer) percentOwnedHandler(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(chi.URLParam(r, "resource"), "player_keys=") {
		serveFile("percent_owned.json")(w, r)
		return
	}
	f.playersPageHandler(w, r)
}

// playersPageHandler generates one page of the paged player listing. Free
// agents at catcher span three pages (25+25+7) so pagination gets exercised
// for real; waivers return one short page and the taken pool two full pages
// followed by an empty one.
func (f *FakeYahooServer) playersPageHandler(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	start, _ := strconv.Atoi(matrixParam(resource, "start"))
	status := matrixParam(resource, "status")
	position := matrixParam(resource, "position")

	f.mu.Lock()
	f.playerStarts = append(f.playerStarts, start)
	f.mu.Unlock()

	total := 0
	switch {
	case status == "FA" && position == "C":
		total = 57
	case status == "FA":
		total = 3
	case status == "W":
		total = 3
	case status == "T":
		total = 50
	}

	n := total - start
	if n > 25 {
		n = 25
	}
	if n <= 0 {
		writeJSON(w, playersPage([]any{}))
		return
	}

	players := map[string]any{"count": n}
	for i := 0; i < n; i++ {
		id := 7000 + start + i
		players[strconv.Itoa(i)] = map[string]any{
			"player": []any{
				[]any{
					map[string]any{"player_key": fmt.Sprintf("388.p.%d", id)},
					map[string]any{"player_id": strconv.Itoa(id)},
					map[string]any{"name": map[string]any{"full": fmt.Sprintf("Player %d", id)}},
					map[string]any{"position_type": "B"},
					map[string]any{"eligible_positions": []any{map[string]any{"position": "C"}}},
				},
				map[string]any{"percent_owned": []any{
					map[string]any{"coverage_type": "week", "week": "12"},
					map[string]any{"value": (start + i) % 100},
				}},
			},
		}
	}
	writeJSON(w, playersPage(players))
}

func playersPage(players any) map[string]any {
	return map[string]any{
		"fantasy_content": map[string]any{
			"league": []any{
				map[string]any{"league_key": LeagueID},
				map[string]any{"players": players},
			},
		},
	}
}

func writeJSON(w http.ResponseWriter, doc any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Printf("error encoding players page: %v", err)
	}
}

// matrixParam pulls a ;name=value parameter out of a path segment.
func matrixParam(segment, name string) string {
	for _, part := range strings.Split(segment, ";") {
		if v, ok := strings.CutPrefix(part, name+"="); ok {
			return v
		}
	}
	return ""
}

func serveFile(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
		if err != nil {
			log.Printf("error reading yahoodata/%s: %v", name, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

const errorEnvelope = `{"error":{"lang":"en-us","description":"You are not allowed to view this page because you are not in this league."}}`

const expiredTokenMessage = `{"error":{"description":"Please provide valid credentials. OAuth oauth_problem=\"token_expired\", realm=\"yahooapis.com\""}}`
