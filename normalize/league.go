package normalize

import (
	"fmt"
	"time"

	"github.com/spilchen/yahoo-fantasy-api/model"
)

// settingsFields is the allow-list of league configuration keys projected
// into the flat Settings record. roster_positions and stat_categories are
// deliberately absent; they have dedicated operations.
var settingsFields = []string{
	"name",
	"scoring_type",
	"start_week",
	"current_week",
	"end_week",
	"start_date",
	"end_date",
	"game_code",
	"season",
	"draft_type",
	"is_auction_draft",
	"uses_playoff",
	"num_playoff_teams",
	"playoff_start_week",
	"uses_faab",
	"waiver_type",
	"waiver_rule",
	"waiver_time",
	"trade_end_date",
	"trade_ratify_type",
	"trade_reject_time",
	"player_pool",
	"cant_cut_list",
	"max_teams",
	"num_teams",
}

// Settings projects the settings document into a flat record. Values are
// looked up in the league metadata first and then in the settings body, so
// week bookkeeping (current_week etc.) comes from the authoritative metadata
// block. Unknown keys in the document are ignored.
func Settings(doc map[string]any) (model.Settings, error) {
	meta, err := NodeMap(doc, "fantasy_content", "league", "0")
	if err != nil {
		return nil, err
	}
	body, err := NodeMap(doc, "fantasy_content", "league", "1", "settings", "0")
	if err != nil {
		return nil, err
	}

	settings := make(model.Settings)
	for _, field := range settingsFields {
		if v, ok := meta[field]; ok {
			settings[field] = v
		} else if v, ok := body[field]; ok {
			settings[field] = v
		}
	}
	return settings, nil
}

// EditDate extracts the league's next roster edit date from the settings
// document.
func EditDate(doc map[string]any) (time.Time, error) {
	meta, err := NodeMap(doc, "fantasy_content", "league", "0")
	if err != nil {
		return time.Time{}, err
	}
	raw, ok := meta["edit_key"]
	if !ok {
		return time.Time{}, fmt.Errorf("settings document has no edit_key")
	}
	d, err := time.Parse(time.DateOnly, StringValue(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing edit_key: %w", err)
	}
	return d, nil
}

// StatCategories extracts the league's scoring categories from the settings
// document.
func StatCategories(doc map[string]any) ([]model.StatCategory, error) {
	stats, err := Node(doc, "fantasy_content", "league", "1", "settings", "0",
		"stat_categories", "stats")
	if err != nil {
		return nil, err
	}
	list, ok := stats.([]any)
	if !ok {
		return nil, fmt.Errorf("stat_categories.stats is not an array")
	}

	cats := make([]model.StatCategory, 0, len(list))
	for _, entry := range list {
		stat, err := NodeMap(entry, "stat")
		if err != nil {
			return nil, err
		}
		id, err := IntValue(stat["stat_id"])
		if err != nil {
			return nil, fmt.Errorf("stat category has no usable stat_id: %w", err)
		}
		cats = append(cats, model.StatCategory{
			StatID:       id,
			DisplayName:  StringValue(stat["display_name"]),
			PositionType: StringValue(stat["position_type"]),
		})
	}
	return cats, nil
}

// Positions extracts the roster slot configuration from the settings
// document.
func Positions(doc map[string]any) ([]model.PositionSlot, error) {
	raw, err := Node(doc, "fantasy_content", "league", "1", "settings", "0",
		"roster_positions")
	if err != nil {
		return nil, err
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("roster_positions is not an array")
	}

	slots := make([]model.PositionSlot, 0, len(list))
	for _, entry := range list {
		rp, err := NodeMap(entry, "roster_position")
		if err != nil {
			return nil, err
		}
		count := 0
		if c, ok := rp["count"]; ok {
			if count, err = IntValue(c); err != nil {
				return nil, fmt.Errorf("roster position has unusable count: %w", err)
			}
		}
		slots = append(slots, model.PositionSlot{
			Position: StringValue(rp["position"]),
			Type:     StringValue(rp["position_type"]),
			Count:    count,
		})
	}
	return slots, nil
}

// Standings extracts the ordered standings from the standings document. The
// first entry is the first-place team.
func Standings(doc map[string]any) ([]model.StandingsEntry, error) {
	teams, err := NodeMap(doc, "fantasy_content", "league", "1", "standings", "0", "teams")
	if err != nil {
		return nil, err
	}
	buckets, err := IndexedCollection(teams)
	if err != nil {
		return nil, err
	}

	standings := make([]model.StandingsEntry, 0, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "team")
		if err != nil {
			return nil, err
		}
		attrs := MergeFragments(frags)

		entry := model.StandingsEntry{
			TeamKey: StringValue(attrs["team_key"]),
			Name:    StringValue(attrs["name"]),
		}
		if ts, ok := auxObject(aux, "team_standings"); ok {
			if err := fillTeamStandings(&entry, ts); err != nil {
				return nil, err
			}
		}
		standings = append(standings, entry)
	}
	return standings, nil
}

func fillTeamStandings(entry *model.StandingsEntry, raw any) error {
	ts, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("team_standings is not an object")
	}
	rank, err := IntValue(ts["rank"])
	if err != nil {
		return fmt.Errorf("team %s has unusable rank: %w", entry.TeamKey, err)
	}
	entry.Rank = rank
	entry.PlayoffSeed = StringValue(ts["playoff_seed"])
	entry.GamesBack = StringValue(ts["games_back"])
	if ot, ok := ts["outcome_totals"].(map[string]any); ok {
		entry.OutcomeTotals = model.OutcomeTotals{
			Wins:       StringValue(ot["wins"]),
			Losses:     StringValue(ot["losses"]),
			Ties:       StringValue(ot["ties"]),
			Percentage: StringValue(ot["percentage"]),
		}
	}
	return nil
}

// Teams extracts the teams document into a summary keyed by team_key.
func Teams(doc map[string]any) (model.TeamSummary, error) {
	teams, err := NodeMap(doc, "fantasy_content", "league", "1", "teams")
	if err != nil {
		return nil, err
	}
	buckets, err := IndexedCollection(teams)
	if err != nil {
		return nil, err
	}

	summary := make(model.TeamSummary, len(buckets))
	for _, bucket := range buckets {
		frags, _, err := entryArray(bucket, "team")
		if err != nil {
			return nil, err
		}
		attrs := MergeFragments(frags)
		key := StringValue(attrs["team_key"])
		if key == "" {
			return nil, fmt.Errorf("team entry has no team_key")
		}
		summary[key] = attrs
	}
	return summary, nil
}

// DraftResults extracts the draft picks from the draftresults document.
// Entries whose player key doesn't match the documented grammar are dropped.
func DraftResults(doc map[string]any) ([]model.DraftResult, error) {
	dr, err := NodeMap(doc, "fantasy_content", "league", "1", "draft_results")
	if err != nil {
		return nil, err
	}
	buckets, err := IndexedCollection(dr)
	if err != nil {
		return nil, err
	}

	results := make([]model.DraftResult, 0, len(buckets))
	for _, bucket := range buckets {
		entry, err := NodeMap(bucket, "draft_result")
		if err != nil {
			return nil, err
		}
		playerID, err := model.PlayerIDFromKey(StringValue(entry["player_key"]))
		if err != nil {
			continue
		}
		pick, err := IntValue(entry["pick"])
		if err != nil {
			return nil, fmt.Errorf("draft result has unusable pick: %w", err)
		}
		round, err := IntValue(entry["round"])
		if err != nil {
			return nil, fmt.Errorf("draft result has unusable round: %w", err)
		}
		results = append(results, model.DraftResult{
			Pick:     pick,
			Round:    round,
			Cost:     StringValue(entry["cost"]),
			TeamKey:  StringValue(entry["team_key"]),
			PlayerID: playerID,
		})
	}
	return results, nil
}

// WeekDateRange extracts the week_start/week_end dates from the first
// matchup of a scoreboard document.
func WeekDateRange(doc map[string]any) (time.Time, time.Time, error) {
	matchups, err := NodeMap(doc, "fantasy_content", "league", "1", "scoreboard", "0", "matchups")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	buckets, err := IndexedCollection(matchups)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(buckets) == 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("scoreboard has no matchups")
	}
	matchup, err := NodeMap(buckets[0], "matchup")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := time.Parse(time.DateOnly, StringValue(matchup["week_start"]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("error parsing week_start: %w", err)
	}
	end, err := time.Parse(time.DateOnly, StringValue(matchup["week_end"]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("error parsing week_end: %w", err)
	}
	return start, end, nil
}

// Transactions extracts league or team transactions. Trader/tradee fields
// are only meaningful for trades; for adds and drops every moved player lands
// in TraderPlayers with its source and destination set.
func Transactions(doc map[string]any) ([]model.Transaction, error) {
	trans, err := NodeMap(doc, "fantasy_content", "league", "1", "transactions")
	if err != nil {
		return nil, err
	}
	buckets, err := IndexedCollection(trans)
	if err != nil {
		return nil, err
	}

	out := make([]model.Transaction, 0, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "transaction")
		if err != nil {
			return nil, err
		}
		meta := MergeFragments(frags)
		tx := model.Transaction{
			TransactionKey: StringValue(meta["transaction_key"]),
			Type:           StringValue(meta["type"]),
			Status:         StringValue(meta["status"]),
			TraderTeamKey:  StringValue(meta["trader_team_key"]),
			TradeeTeamKey:  StringValue(meta["tradee_team_key"]),
		}
		if players, ok := auxObject(aux, "players"); ok {
			if err := fillTransactionPlayers(&tx, players); err != nil {
				return nil, err
			}
		}
		out = append(out, tx)
	}
	return out, nil
}

func fillTransactionPlayers(tx *model.Transaction, raw any) error {
	node, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("transaction players is not an object")
	}
	buckets, err := IndexedCollection(node)
	if err != nil {
		return err
	}
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "player")
		if err != nil {
			return err
		}
		attrs := MergeFragments(frags)
		id, err := IntValue(attrs["player_id"])
		if err != nil {
			return fmt.Errorf("transaction player has unusable player_id: %w", err)
		}
		p := model.TransactionPlayer{
			PlayerID: id,
			Name:     nameOf(attrs),
		}
		if td, ok := auxObject(aux, "transaction_data"); ok {
			data := transactionData(td)
			p.SourceTeam = StringValue(data["source_team_key"])
			p.DestTeam = StringValue(data["destination_team_key"])
		}
		if tx.TradeeTeamKey != "" && p.SourceTeam == tx.TradeeTeamKey {
			tx.TradeePlayers = append(tx.TradeePlayers, p)
		} else {
			tx.TraderPlayers = append(tx.TraderPlayers, p)
		}
	}
	return nil
}

// transactionData tolerates both shapes the server emits: a plain object and
// a single-element array wrapping one.
func transactionData(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]any); ok {
				return m
			}
		}
	}
	return map[string]any{}
}

func nameOf(attrs map[string]any) string {
	if n, ok := attrs["name"].(map[string]any); ok {
		return StringValue(n["full"])
	}
	return ""
}
