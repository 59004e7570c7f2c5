package stats

// SeasonDetailFields maps a spotlight category to the season stats shown in
// its card breakdown. Order is display order; the first row doubles as the
// season-metric fallback when the headline stat is absent from the splits.
var SeasonDetailFields = map[string][]Field{
	"passing": {
		{Category: "passing", Stat: "completions", Label: "Completions"},
		{Category: "passing", Stat: "passingAttempts", Label: "Attempts"},
		{Category: "passing", Stat: "netPassingYards", Label: "Yards"},
		{Category: "passing", Stat: "passingTouchdowns", Label: "Pass TD"},
		{Category: "passing", Stat: "interceptions", Label: "INT"},
	},
	"rushing": {
		{Category: "rushing", Stat: "rushingAttempts", Label: "Carries"},
		{Category: "rushing", Stat: "rushingYards", Label: "Yards"},
		{Category: "rushing", Stat: "yardsPerRushAttempt", Label: "Yards/Carry"},
		{Category: "rushing", Stat: "rushingTouchdowns", Label: "Rush TD"},
	},
	"receiving": {
		{Category: "receiving", Stat: "receptions", Label: "Receptions"},
		{Category: "receiving", Stat: "receivingYards", Label: "Yards"},
		{Category: "receiving", Stat: "yardsPerReception", Label: "Yards/Catch"},
		{Category: "receiving", Stat: "receivingTouchdowns", Label: "Rec TD"},
	},
	"tackles": {
		{Category: "defensive", Stat: "totalTackles", Label: "Total Tackles"},
		{Category: "defensive", Stat: "soloTackles", Label: "Solo"},
		{Category: "defensive", Stat: "assistTackles", Label: "Assists"},
		{Category: "defensive", Stat: "sacks", Label: "Sacks"},
	},
	"sacks": {
		{Category: "defensive", Stat: "sacks", Label: "Sacks"},
		{Category: "defensive", Stat: "tacklesForLoss", Label: "TFL"},
		{Category: "defensive", Stat: "totalTackles", Label: "Total Tackles"},
		{Category: "defensive", Stat: "passesDefended", Label: "Pass Breakups"},
	},
	"passesDefended": {
		{Category: "defensive", Stat: "passesDefended", Label: "Pass Breakups"},
		{Category: "defensive", Stat: "interceptions", Label: "Interceptions"},
		{Category: "defensive", Stat: "totalTackles", Label: "Total Tackles"},
	},
}
