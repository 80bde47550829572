package fantasy

import (
	"time"

	"github.com/spilchen/yahoo-fantasy-api/model"
	"github.com/spilchen/yahoo-fantasy-api/normalize"
	"github.com/spilchen/yahoo-fantasy-api/transport"
)

// The service pages player listings at 25 records and rejects requests for
// more than 25 player keys, so both the pager and the batch lookups work in
// units of pageSize.
const pageSize = 25

// fetchPlayers gathers the complete player listing for a status filter,
// walking pages until the server returns an empty one. The offset advances
// by the number of records a page actually yielded, so a short final page
// terminates the loop on the next round trip without over- or under-
// fetching.
func (l *League) fetchPlayers(status, position string) ([]model.Player, error) {
	var all []model.Player
	for start := 0; ; {
		doc, err := l.rq.Get(transport.PlayersPath(l.leagueID, start, status, position))
		if err != nil {
			return nil, err
		}
		page, err := normalize.PlayersPage(doc)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return all, nil
		}
		all = append(all, page...)
		start += len(page)
	}
}

// PlayerDetailsByName returns the detail documents for players matching a
// full or partial name. Results are cached per search string, and each
// player in the result is also cached by id for later id lookups.
func (l *League) PlayerDetailsByName(search string) ([]map[string]any, error) {
	if search == "" {
		return nil, &model.UnsupportedLookupError{Reason: "a search string or player ids are required"}
	}
	if cached, ok := l.detailsBySearch[search]; ok {
		return cached, nil
	}
	doc, err := l.rq.Get(transport.PlayerSearchPath(l.leagueID, search))
	if err != nil {
		return nil, err
	}
	details, err := normalize.PlayerDetails(doc)
	if err != nil {
		return nil, err
	}
	l.detailsBySearch[search] = details
	for _, d := range details {
		if id, ok := d["player_id"].(int); ok {
			l.detailsByID[id] = d
		}
	}
	return details, nil
}

// PlayerDetails returns the detail documents for a set of player ids, in the
// requested order. Ids already seen by this League are served from cache;
// only the missing ones are fetched, in batches of at most 25 keys.
func (l *League) PlayerDetails(playerIDs []int) ([]map[string]any, error) {
	if len(playerIDs) == 0 {
		return nil, &model.UnsupportedLookupError{Reason: "a search string or player ids are required"}
	}

	var missing []int
	for _, id := range playerIDs {
		if _, ok := l.detailsByID[id]; !ok {
			missing = append(missing, id)
		}
	}
	for _, chunk := range chunkIDs(missing) {
		uri, err := transport.PlayerKeysPath(l.leagueID, chunk)
		if err != nil {
			return nil, err
		}
		doc, err := l.rq.Get(uri)
		if err != nil {
			return nil, err
		}
		details, err := normalize.PlayerDetails(doc)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			if id, ok := d["player_id"].(int); ok {
				l.detailsByID[id] = d
			}
		}
	}

	out := make([]map[string]any, 0, len(playerIDs))
	for _, id := range playerIDs {
		if d, ok := l.detailsByID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// PlayerStats returns season-to-date stats for the given players.
func (l *League) PlayerStats(playerIDs []int, season int) ([]model.StatRecord, error) {
	return l.playerStats(playerIDs, "season", time.Time{}, season)
}

// PlayerStatsForDate returns stats for a single day. A zero day means
// today.
func (l *League) PlayerStatsForDate(playerIDs []int, day time.Time) ([]model.StatRecord, error) {
	if day.IsZero() {
		day = l.clk.Now()
	}
	return l.playerStats(playerIDs, "date", day, 0)
}

// PlayerStatsForRange returns stats over a trailing range; reqType is
// lastweek or lastmonth.
func (l *League) PlayerStatsForRange(playerIDs []int, reqType string) ([]model.StatRecord, error) {
	return l.playerStats(playerIDs, reqType, time.Time{}, 0)
}

func (l *League) playerStats(playerIDs []int, reqType string, day time.Time, season int) ([]model.StatRecord, error) {
	if len(playerIDs) == 0 {
		return nil, &model.UnsupportedLookupError{Reason: "player ids are required for a stats lookup"}
	}
	settings, err := l.Settings()
	if err != nil {
		return nil, err
	}
	gameCode := normalize.StringValue(settings["game_code"])
	statIDs, err := l.statIDMap()
	if err != nil {
		return nil, err
	}

	var records []model.StatRecord
	for _, chunk := range chunkIDs(playerIDs) {
		uri, err := transport.PlayerStatsPath(gameCode, chunk, reqType, day, season)
		if err != nil {
			return nil, err
		}
		doc, err := l.rq.Get(uri)
		if err != nil {
			return nil, err
		}
		page, err := normalize.PlayerStats(doc, statIDs)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
	}
	return records, nil
}

// chunkIDs splits ids into request-sized batches, preserving order.
func chunkIDs(ids []int) [][]int {
	var chunks [][]int
	for len(ids) > pageSize {
		chunks = append(chunks, ids[:pageSize])
		ids = ids[pageSize:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
