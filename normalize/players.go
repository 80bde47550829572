package normalize

import (
	"fmt"

	"github.com/spilchen/yahoo-fantasy-api/model"
)

// playerFromAttrs builds the flat Player projection from a merged attribute
// map. Status defaults to the empty string for healthy players; the keeper
// flag never reaches here because MergeFragments drops boolean statuses.
func playerFromAttrs(attrs map[string]any) (model.Player, error) {
	id, err := IntValue(attrs["player_id"])
	if err != nil {
		return model.Player{}, fmt.Errorf("player has unusable player_id: %w", err)
	}
	return model.Player{
		PlayerID:          id,
		Name:              nameOf(attrs),
		PositionType:      StringValue(attrs["position_type"]),
		EligiblePositions: eligiblePositions(attrs["eligible_positions"]),
		Status:            StringValue(attrs["status"]),
	}, nil
}

// eligiblePositions compacts the sequence of single-key {position: code}
// objects into a plain ordered list of codes.
func eligiblePositions(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	positions := make([]string, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			if pos, ok := m["position"]; ok {
				positions = append(positions, StringValue(pos))
			}
		}
	}
	return positions
}

// PlayersPage extracts one page of the paged player listing. Ownership
// percentage arrives as a side-channel stream adjacent to each player's
// attribute fragments; the two streams share no key, so they are zipped by
// position.
func PlayersPage(doc map[string]any) ([]model.Player, error) {
	playersNode, err := Node(doc, "fantasy_content", "league", "1", "players")
	if err != nil {
		return nil, err
	}
	// An empty page comes back as an empty array instead of an indexed
	// collection.
	node, ok := playersNode.(map[string]any)
	if !ok {
		return nil, nil
	}
	buckets, err := IndexedCollection(node)
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(buckets))
	owned := make([]int, 0, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "player")
		if err != nil {
			return nil, err
		}
		p, err := playerFromAttrs(MergeFragments(frags))
		if err != nil {
			return nil, err
		}
		players = append(players, p)
		owned = append(owned, percentOwnedValue(aux))
	}
	for i := range players {
		players[i].PercentOwned = owned[i]
	}
	return players, nil
}

// percentOwnedValue digs the ownership percentage out of the percent_owned
// auxiliary stream: a list of fragments where one carries coverage_type and
// another the value. Missing values normalize to 0.
func percentOwnedValue(aux []any) int {
	po, ok := auxObject(aux, "percent_owned")
	if !ok {
		return 0
	}
	frags, ok := po.([]any)
	if !ok {
		return 0
	}
	for _, f := range frags {
		if m, ok := f.(map[string]any); ok {
			if v, found := m["value"]; found {
				if n, err := IntValue(v); err == nil {
					return n
				}
			}
		}
	}
	return 0
}

// Roster extracts a team's roster for a week or date. The selected position
// rides in each player's auxiliary bucket.
func Roster(doc map[string]any) ([]model.RosterEntry, error) {
	players, err := NodeMap(doc, "fantasy_content", "team", "1", "roster", "0", "players")
	if err != nil {
		return nil, err
	}
	buckets, err := IndexedCollection(players)
	if err != nil {
		return nil, err
	}

	roster := make([]model.RosterEntry, 0, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "player")
		if err != nil {
			return nil, err
		}
		p, err := playerFromAttrs(MergeFragments(frags))
		if err != nil {
			return nil, err
		}
		entry := model.RosterEntry{Player: p}
		if sp, ok := auxObject(aux, "selected_position"); ok {
			entry.SelectedPosition = selectedPosition(sp)
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

func selectedPosition(raw any) string {
	frags, ok := raw.([]any)
	if !ok {
		return ""
	}
	merged := MergeFragments(frags)
	return StringValue(merged["position"])
}

// PlayerDetails extracts the player detail documents from a search or
// player_keys lookup. Unlike the list projections, the nested name object is
// preserved as-is; only player_id is normalized to an int and the eligible
// position list is compacted, so callers can key caches and filter by slot.
func PlayerDetails(doc map[string]any) ([]map[string]any, error) {
	buckets, err := playerBuckets(doc)
	if err != nil {
		return nil, err
	}

	details := make([]map[string]any, 0, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "player")
		if err != nil {
			return nil, err
		}
		attrs := MergeFragments(frags)
		id, err := IntValue(attrs["player_id"])
		if err != nil {
			return nil, fmt.Errorf("player detail has unusable player_id: %w", err)
		}
		attrs["player_id"] = id
		if _, ok := attrs["eligible_positions"]; ok {
			attrs["eligible_positions"] = eligiblePositions(attrs["eligible_positions"])
		}
		// Auxiliary sub-documents (player_stats, percent_owned, ...) are
		// folded in so a detail lookup is self-contained.
		for _, a := range aux {
			if m, ok := a.(map[string]any); ok {
				for k, v := range m {
					attrs[k] = v
				}
			}
		}
		details = append(details, attrs)
	}
	return details, nil
}

// PercentOwned extracts ownership percentages for an explicit set of player
// keys.
func PercentOwned(doc map[string]any) ([]model.PercentOwnedInfo, error) {
	buckets, err := playerBuckets(doc)
	if err != nil {
		return nil, err
	}

	out := make([]model.PercentOwnedInfo, 0, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "player")
		if err != nil {
			return nil, err
		}
		attrs := MergeFragments(frags)
		id, err := IntValue(attrs["player_id"])
		if err != nil {
			return nil, fmt.Errorf("percent owned entry has unusable player_id: %w", err)
		}
		out = append(out, model.PercentOwnedInfo{
			PlayerID:     id,
			Name:         nameOf(attrs),
			PercentOwned: percentOwnedValue(aux),
		})
	}
	return out, nil
}

// Ownership extracts in-league ownership, keyed by player id. Free agents
// have an ownership type and no owning team.
func Ownership(doc map[string]any) (map[int]model.OwnershipInfo, error) {
	buckets, err := playerBuckets(doc)
	if err != nil {
		return nil, err
	}

	out := make(map[int]model.OwnershipInfo, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "player")
		if err != nil {
			return nil, err
		}
		attrs := MergeFragments(frags)
		id, err := IntValue(attrs["player_id"])
		if err != nil {
			return nil, fmt.Errorf("ownership entry has unusable player_id: %w", err)
		}
		info := model.OwnershipInfo{
			PlayerID: id,
			Name:     nameOf(attrs),
		}
		if o, ok := auxObject(aux, "ownership"); ok {
			if m, ok := o.(map[string]any); ok {
				info.OwnershipType = StringValue(m["ownership_type"])
				info.OwnerTeamKey = StringValue(m["owner_team_key"])
				info.OwnerTeamName = StringValue(m["owner_team_name"])
			}
		}
		out[id] = info
	}
	return out, nil
}

// PlayerStats extracts stat records for a set of players. Stat ids are
// resolved through the supplied id map; unknown ids are dropped. Values are
// numeric when they parse and strings otherwise.
func PlayerStats(doc map[string]any, statIDMap map[int]string) ([]model.StatRecord, error) {
	players, err := NodeMap(doc, "fantasy_content", "players")
	if err != nil {
		return nil, err
	}
	buckets, err := IndexedCollection(players)
	if err != nil {
		return nil, err
	}

	records := make([]model.StatRecord, 0, len(buckets))
	for _, bucket := range buckets {
		frags, aux, err := entryArray(bucket, "player")
		if err != nil {
			return nil, err
		}
		attrs := MergeFragments(frags)
		id, err := IntValue(attrs["player_id"])
		if err != nil {
			return nil, fmt.Errorf("stats entry has unusable player_id: %w", err)
		}
		rec := model.StatRecord{
			PlayerID:     id,
			Name:         nameOf(attrs),
			PositionType: StringValue(attrs["position_type"]),
			Stats:        make(map[string]any),
		}
		if ps, ok := auxObject(aux, "player_stats"); ok {
			if err := fillStats(&rec, ps, statIDMap); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func fillStats(rec *model.StatRecord, raw any, statIDMap map[int]string) error {
	node, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("player_stats is not an object")
	}
	list, ok := node["stats"].([]any)
	if !ok {
		return fmt.Errorf("player_stats has no stats array")
	}
	for _, entry := range list {
		stat, err := NodeMap(entry, "stat")
		if err != nil {
			return err
		}
		id, err := IntValue(stat["stat_id"])
		if err != nil {
			return fmt.Errorf("stat has unusable stat_id: %w", err)
		}
		name, known := statIDMap[id]
		if !known {
			continue
		}
		rec.Stats[name] = numberOrString(stat["value"])
	}
	return nil
}

// playerBuckets locates the player collection for the league-scoped player
// endpoints (details, percent_owned, ownership).
func playerBuckets(doc map[string]any) ([]any, error) {
	players, err := NodeMap(doc, "fantasy_content", "league", "1", "players")
	if err != nil {
		return nil, err
	}
	return IndexedCollection(players)
}
