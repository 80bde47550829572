package normalize

import "github.com/spilchen/yahoo-fantasy-api/model"

// Static stat-id tables per game code. These cover the ids Yahoo! emits even
// when a league doesn't score them. League settings carry the authoritative
// display names for scored categories, so StatIDMap layers those on top.

var mlbStatIDs = map[int]string{
	0:  "G",
	1:  "GS",
	3:  "AVG",
	4:  "OBP",
	5:  "SLG",
	6:  "AB",
	7:  "R",
	8:  "H",
	10: "2B",
	11: "3B",
	12: "HR",
	13: "RBI",
	16: "SB",
	18: "BB",
	21: "K",
	26: "ERA",
	27: "WHIP",
	28: "W",
	29: "L",
	32: "SV",
	42: "SO",
	48: "HLD",
	50: "IP",
	60: "H/AB",
}

var nhlStatIDs = map[int]string{
	0:  "GP",
	1:  "G",
	2:  "A",
	3:  "P",
	4:  "+/-",
	5:  "PIM",
	6:  "PPG",
	7:  "PPA",
	8:  "PPP",
	11: "GWG",
	14: "SOG",
	16: "FW",
	19: "W",
	22: "GA",
	23: "GAA",
	24: "SV",
	25: "SA",
	26: "SV%",
	27: "SHO",
	31: "HIT",
	32: "BLK",
}

var nflStatIDs = map[int]string{
	0:  "GP",
	4:  "Pass Yds",
	5:  "Pass TD",
	6:  "Int",
	9:  "Rush Yds",
	10: "Rush TD",
	11: "Rec",
	12: "Rec Yds",
	13: "Rec TD",
	15: "Ret TD",
	18: "Fum Lost",
	57: "Fum Ret TD",
}

var nbaStatIDs = map[int]string{
	0:  "GP",
	5:  "FG%",
	8:  "FT%",
	10: "3PTM",
	12: "PTS",
	15: "REB",
	16: "AST",
	17: "ST",
	18: "BLK",
	19: "TO",
}

var staticStatIDs = map[string]map[int]string{
	"mlb": mlbStatIDs,
	"nhl": nhlStatIDs,
	"nfl": nflStatIDs,
	"nba": nbaStatIDs,
}

// StatIDMap merges the static table for a game code with the league's
// configured categories. Names derived from the league settings win over the
// static defaults.
func StatIDMap(gameCode string, categories []model.StatCategory) map[int]string {
	merged := make(map[int]string)
	for id, name := range staticStatIDs[gameCode] {
		merged[id] = name
	}
	for _, c := range categories {
		merged[c.StatID] = c.DisplayName
	}
	return merged
}
