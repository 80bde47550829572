// league-report prints the standings and settings of one of the logged-in
// user's leagues. It is both a smoke test for a set of OAuth credentials and
// a worked example of wiring a Session to the facades.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/oauth2"

	"github.com/spilchen/yahoo-fantasy-api/fantasy"
	"github.com/spilchen/yahoo-fantasy-api/normalize"
	"github.com/spilchen/yahoo-fantasy-api/transport"
)

type config struct {
	ClientID     string `envconfig:"YAHOO_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"YAHOO_CLIENT_SECRET" required:"true"`
	AccessToken  string `envconfig:"YAHOO_ACCESS_TOKEN"`
	RefreshToken string `envconfig:"YAHOO_REFRESH_TOKEN" required:"true"`
	RedirectURL  string `envconfig:"OAUTH_REDIRECT_URL"`
	GameCode     string `envconfig:"YAHOO_GAME_CODE" default:"mlb"`
	LeagueID     string `envconfig:"YAHOO_LEAGUE_ID"`
}

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("error loading .env file: %v", err)
	}

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("error reading configuration: %v", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://api.login.yahoo.com/oauth2/request_auth",
			TokenURL: "https://api.login.yahoo.com/oauth2/get_token",
		},
		RedirectURL: cfg.RedirectURL,
	}
	token := &oauth2.Token{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
	}

	sess := transport.NewSession(context.Background(), oauthCfg, token)

	leagueID := cfg.LeagueID
	if leagueID == "" {
		game := fantasy.NewGame(sess, cfg.GameCode)
		ids, err := game.LeagueIDs(0)
		if err != nil {
			log.Fatalf("error listing leagues: %v", err)
		}
		if len(ids) == 0 {
			log.Fatalf("no %s leagues found for this account", cfg.GameCode)
		}
		leagueID = ids[len(ids)-1]
	}

	league := fantasy.NewLeague(sess, leagueID)
	if err := report(league); err != nil {
		log.Fatalf("error building league report: %v", err)
	}
}

func report(league *fantasy.League) error {
	settings, err := league.Settings()
	if err != nil {
		return err
	}
	week, err := league.CurrentWeek()
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s, season %s) - week %d\n\n",
		normalize.StringValue(settings["name"]),
		normalize.StringValue(settings["game_code"]),
		normalize.StringValue(settings["season"]),
		week)

	standings, err := league.Standings()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTEAM\tW-L-T\tGB")
	for _, s := range standings {
		fmt.Fprintf(w, "%d\t%s\t%s-%s-%s\t%s\n",
			s.Rank, s.Name,
			s.OutcomeTotals.Wins, s.OutcomeTotals.Losses, s.OutcomeTotals.Ties,
			s.GamesBack)
	}
	return w.Flush()
}
