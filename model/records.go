package model

// Settings holds the league-wide configuration returned by the settings
// endpoint, flattened to scalar values. roster_positions and stat_categories
// are intentionally absent; they are served by League.Positions and
// League.StatCategories.
type Settings map[string]any

// OutcomeTotals is a team's season win/loss record within the standings.
type OutcomeTotals struct {
	Wins       string
	Losses     string
	Ties       string
	Percentage string
}

// StandingsEntry is one team's row in the league standings. The slice order
// of a standings result defines rank; the first entry is the best team.
type StandingsEntry struct {
	TeamKey       string
	Name          string
	Rank          int
	PlayoffSeed   string
	OutcomeTotals OutcomeTotals
	GamesBack     string
}

// TeamSummary maps team_key to that team's raw attribute mapping (name, id,
// owner flags, logos, and whatever else the endpoint emits).
type TeamSummary map[string]map[string]any

// Player is the flat projection of a player from the list endpoints. Status
// is the injury designation ("DTD", "IL", ...) and is empty for healthy
// players. PercentOwned is only populated by endpoints that emit the
// percent_owned sub-resource.
type Player struct {
	PlayerID          int
	Name              string
	PositionType      string
	EligiblePositions []string
	Status            string
	PercentOwned      int
}

// RosterEntry is a Player plus the position the player is slotted into for a
// specific week or date.
type RosterEntry struct {
	Player
	SelectedPosition string
}

// StatRecord carries a player's stats for some time range. The fixed fields
// identify the player; Stats maps display names (resolved through the stat id
// map) to values. Values are float64 when they parse as numbers and strings
// otherwise.
type StatRecord struct {
	PlayerID     int
	Name         string
	PositionType string
	Stats        map[string]any
}

// StatCategory is one scoring category from the league settings.
type StatCategory struct {
	StatID       int
	DisplayName  string
	PositionType string
}

// PositionSlot is one roster position from the league settings, e.g. two
// starting catchers would be {Position: "C", Count: 2}.
type PositionSlot struct {
	Position string
	Type     string
	Count    int
}

// DraftResult is a single draft pick. Cost is only set for auction drafts.
type DraftResult struct {
	Pick     int
	Round    int
	Cost     string
	TeamKey  string
	PlayerID int
}

// TransactionPlayer is the subset of player data carried inside a
// transaction document.
type TransactionPlayer struct {
	PlayerID   int
	Name       string
	SourceTeam string
	DestTeam   string
}

// Transaction is a single league transaction (add, drop, or trade). The
// trader/tradee fields are only populated for trades.
type Transaction struct {
	TransactionKey string
	Type           string
	Status         string
	TraderTeamKey  string
	TradeeTeamKey  string
	TraderPlayers  []TransactionPlayer
	TradeePlayers  []TransactionPlayer
}

// OwnershipInfo describes who owns a player within the league.
type OwnershipInfo struct {
	PlayerID      int
	Name          string
	OwnershipType string
	OwnerTeamKey  string
	OwnerTeamName string
}

// PercentOwnedInfo is a player's ownership percentage across all Yahoo!
// leagues.
type PercentOwnedInfo struct {
	PlayerID     int
	Name         string
	PercentOwned int
}

// GameInfo is the metadata for a Yahoo! fantasy game (sport + season).
type GameInfo struct {
	GameID  string
	GameKey string
	Code    string
	Name    string
	Season  string
}
