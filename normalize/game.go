package normalize

import (
	"fmt"
	"sort"

	"github.com/spilchen/yahoo-fantasy-api/model"
)

// GameInfo extracts the metadata block of a game document.
func GameInfo(doc map[string]any) (model.GameInfo, error) {
	meta, err := NodeMap(doc, "fantasy_content", "game", "0")
	if err != nil {
		return model.GameInfo{}, err
	}
	return model.GameInfo{
		GameID:  StringValue(meta["game_id"]),
		GameKey: StringValue(meta["game_key"]),
		Code:    StringValue(meta["code"]),
		Name:    StringValue(meta["name"]),
		Season:  StringValue(meta["season"]),
	}, nil
}

// LeagueIDs walks the users/games/teams document and returns the league ids
// of every league the logged-in user plays in for the given game code,
// optionally restricted to a season. The result is sorted for a
// deterministic order.
func LeagueIDs(doc map[string]any, gameCode string, year int) ([]string, error) {
	games, err := userGames(doc)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, gameBucket := range games {
		frags, aux, err := entryArray(gameBucket, "game")
		if err != nil {
			return nil, err
		}
		meta := MergeFragments(frags)
		if StringValue(meta["code"]) != gameCode {
			continue
		}
		if year != 0 {
			season, err := IntValue(meta["season"])
			if err != nil || season != year {
				continue
			}
		}
		teams, ok := auxObject(aux, "teams")
		if !ok {
			continue
		}
		teamIDs, err := leagueIDsFromTeams(teams)
		if err != nil {
			return nil, err
		}
		ids = append(ids, teamIDs...)
	}
	sort.Strings(ids)
	return ids, nil
}

func leagueIDsFromTeams(raw any) ([]string, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("game teams is not an object")
	}
	buckets, err := IndexedCollection(node)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		frags, _, err := entryArray(bucket, "team")
		if err != nil {
			return nil, err
		}
		attrs := MergeFragments(frags)
		id, err := model.LeagueIDFromTeamKey(StringValue(attrs["team_key"]))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// TeamKeyForLeague finds the logged-in user's team key within the given
// league from the users/games/teams document.
func TeamKeyForLeague(doc map[string]any, leagueID string) (string, error) {
	games, err := userGames(doc)
	if err != nil {
		return "", err
	}
	for _, gameBucket := range games {
		_, aux, err := entryArray(gameBucket, "game")
		if err != nil {
			return "", err
		}
		teams, ok := auxObject(aux, "teams")
		if !ok {
			continue
		}
		node, ok := teams.(map[string]any)
		if !ok {
			continue
		}
		buckets, err := IndexedCollection(node)
		if err != nil {
			return "", err
		}
		for _, bucket := range buckets {
			frags, _, err := entryArray(bucket, "team")
			if err != nil {
				return "", err
			}
			key := StringValue(MergeFragments(frags)["team_key"])
			id, err := model.LeagueIDFromTeamKey(key)
			if err == nil && id == leagueID {
				return key, nil
			}
		}
	}
	return "", fmt.Errorf("no team found for league %s", leagueID)
}

// userGames returns the game buckets of the first (only) logged-in user.
func userGames(doc map[string]any) ([]any, error) {
	users, err := NodeMap(doc, "fantasy_content", "users")
	if err != nil {
		return nil, err
	}
	userBuckets, err := IndexedCollection(users)
	if err != nil {
		return nil, err
	}
	if len(userBuckets) == 0 {
		return nil, fmt.Errorf("users document has no users")
	}
	_, aux, err := entryArray(userBuckets[0], "user")
	if err != nil {
		return nil, err
	}
	games, ok := auxObject(aux, "games")
	if !ok {
		return nil, fmt.Errorf("user has no games")
	}
	node, ok := games.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("user games is not an object")
	}
	return IndexedCollection(node)
}

// MatchupOpponent finds the team opposing teamKey in a team matchups
// document for a single week.
func MatchupOpponent(doc map[string]any, teamKey string, week int) (string, error) {
	matchups, err := NodeMap(doc, "fantasy_content", "team", "1", "matchups")
	if err != nil {
		return "", err
	}
	buckets, err := IndexedCollection(matchups)
	if err != nil {
		return "", err
	}
	for _, bucket := range buckets {
		matchup, err := NodeMap(bucket, "matchup", "0", "teams")
		if err != nil {
			return "", err
		}
		teamBuckets, err := IndexedCollection(matchup)
		if err != nil {
			return "", err
		}
		for _, tb := range teamBuckets {
			frags, _, err := entryArray(tb, "team")
			if err != nil {
				return "", err
			}
			key := StringValue(MergeFragments(frags)["team_key"])
			if key != "" && key != teamKey {
				return key, nil
			}
		}
	}
	return "", &model.OpponentNotFoundError{TeamKey: teamKey, Week: week}
}

// TeamDetails extracts the attribute map of a single team document.
func TeamDetails(doc map[string]any) (map[string]any, error) {
	team, err := Node(doc, "fantasy_content", "team")
	if err != nil {
		return nil, err
	}
	arr, ok := team.([]any)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("team document has no positional array")
	}
	frags, ok := arr[0].([]any)
	if !ok {
		return nil, fmt.Errorf("team document has no attribute fragments")
	}
	return MergeFragments(frags), nil
}
