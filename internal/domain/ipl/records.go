package ipl

import (
	"github.com/dara-lab/dara/internal/query"
)

const ballsPerOver = 6

// TeamWins is how many of a team's matches a side won.
type TeamWins struct {
	WinningTeam string `json:"WinningTeam"`
	Wins        int    `json:"wins"`
}

// TeamRecord is a team's results and scoring rate.
type TeamRecord struct {
	Team         string     `json:"team"`
	TotalMatches int        `json:"total_matches"`
	Wins         int        `json:"wins"`
	Losses       int        `json:"losses"`
	Ties         int        `json:"ties"`
	RunRate      float64    `json:"run_rate"`
	VsTeam       []TeamWins `json:"vs_team"`
}

type overKey struct {
	match, innings, over int
}

// TeamRecord summarises team's matches. A loss is a decided match won by
// someone else; run rate is batting runs per distinct over faced, 0 when the
// team never batted.
func (d *Dataset) TeamRecord(team string) TeamRecord {
	played := query.Filter(d.matches, func(m Match) bool { return m.Plays(team) })

	batting := query.Filter(d.balls, func(b Ball) bool { return b.BattingTeam == team })
	runs := query.Sum(query.Map(batting, func(b Ball) int { return b.TotalRun }))
	overs := query.CountDistinct(batting, func(b Ball) (overKey, bool) {
		return overKey{b.MatchID, b.Innings, b.Over}, true
	})

	winner := func(m Match) (string, bool) { return m.WinningTeam, m.WinningTeam != "" }
	return TeamRecord{
		Team:         team,
		TotalMatches: len(played),
		Wins:         query.Count(played, func(m Match) bool { return m.WinningTeam == team }),
		Losses: query.Count(played, func(m Match) bool {
			return m.WinningTeam != "" && m.WinningTeam != team
		}),
		Ties:    query.Count(played, func(m Match) bool { return m.WonBy == TieResult }),
		RunRate: query.Round2(query.Ratio(runs, overs, 0)),
		VsTeam: query.Map(query.GroupBy(played, winner), func(g query.Group[string, Match]) TeamWins {
			return TeamWins{WinningTeam: g.Key, Wins: len(g.Rows)}
		}),
	}
}

// BowlingFigures are a bowler's aggregate numbers.
type BowlingFigures struct {
	BallsBowled  int     `json:"balls_bowled"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
}

// BowlingVsTeam are a bowler's numbers against one batting side.
type BowlingVsTeam struct {
	BattingTeam  string `json:"BattingTeam"`
	BallsBowled  int    `json:"balls_bowled"`
	RunsConceded int    `json:"runs_conceded"`
	Wickets      int    `json:"wickets"`
}

// BowlerRecord is a bowler's career summary.
type BowlerRecord struct {
	Bowler  string          `json:"bowler"`
	Overall BowlingFigures  `json:"overall"`
	VsTeam  []BowlingVsTeam `json:"vs_team"`
}

func outRecorded(b Ball) bool { return b.PlayerOut != "" }

// BowlerRecord summarises every delivery bowled by bowler. Economy is runs
// per six balls, 0 when no balls were bowled.
func (d *Dataset) BowlerRecord(bowler string) BowlerRecord {
	rows := query.Filter(d.balls, func(b Ball) bool { return b.Bowler == bowler })
	runs := query.Sum(query.Map(rows, func(b Ball) int { return b.TotalRun }))
	wickets := query.Count(rows, func(b Ball) bool { return b.IsWicket && outRecorded(b) })

	economy := 0.0
	if len(rows) > 0 {
		economy = float64(runs) / (float64(len(rows)) / ballsPerOver)
	}
	battingTeam := func(b Ball) (string, bool) { return b.BattingTeam, b.BattingTeam != "" }
	return BowlerRecord{
		Bowler: bowler,
		Overall: BowlingFigures{
			BallsBowled:  len(rows),
			RunsConceded: runs,
			Wickets:      wickets,
			Economy:      query.Round2(economy),
		},
		VsTeam: query.Map(query.GroupBy(rows, battingTeam), func(g query.Group[string, Ball]) BowlingVsTeam {
			return BowlingVsTeam{
				BattingTeam:  g.Key,
				BallsBowled:  len(g.Rows),
				RunsConceded: query.Sum(query.Map(g.Rows, func(b Ball) int { return b.TotalRun })),
				Wickets:      query.Count(g.Rows, outRecorded),
			}
		}),
	}
}

// BattingFigures are a batter's aggregate numbers.
type BattingFigures struct {
	Runs       int     `json:"runs"`
	BallsFaced int     `json:"balls_faced"`
	Average    float64 `json:"average"`
	StrikeRate float64 `json:"strike_rate"`
}

// BattingVsTeam are a batter's numbers against one bowling side.
type BattingVsTeam struct {
	BowlingTeam string `json:"BowlingTeam"`
	Runs        int    `json:"runs"`
	Balls       int    `json:"balls"`
	Dismissals  int    `json:"dismissals"`
}

// BatsmanRecord is a batter's career summary.
type BatsmanRecord struct {
	Batsman string          `json:"batsman"`
	Overall BattingFigures  `json:"overall"`
	VsTeam  []BattingVsTeam `json:"vs_team"`
}

// BatsmanRecord summarises every delivery faced by batsman. The average is
// runs per dismissal, or the run total when never dismissed; strike rate is
// runs per hundred balls, 0 when no balls were faced.
func (d *Dataset) BatsmanRecord(batsman string) BatsmanRecord {
	rows := query.Filter(d.balls, func(b Ball) bool { return b.Batter == batsman })
	runs := query.Sum(query.Map(rows, func(b Ball) int { return b.BatsmanRun }))
	dismissed := func(b Ball) bool { return b.PlayerOut == batsman }
	dismissals := query.Count(rows, dismissed)

	bowlingTeam := func(b Ball) (string, bool) {
		t := d.bowlingTeam(b)
		return t, t != ""
	}
	return BatsmanRecord{
		Batsman: batsman,
		Overall: BattingFigures{
			Runs:       runs,
			BallsFaced: len(rows),
			Average:    query.Round2(query.Ratio(runs, dismissals, float64(runs))),
			StrikeRate: query.Round2(query.Percent(runs, len(rows))),
		},
		VsTeam: query.Map(query.GroupBy(rows, bowlingTeam), func(g query.Group[string, Ball]) BattingVsTeam {
			return BattingVsTeam{
				BowlingTeam: g.Key,
				Runs:        query.Sum(query.Map(g.Rows, func(b Ball) int { return b.BatsmanRun })),
				Balls:       len(g.Rows),
				Dismissals:  query.Count(g.Rows, dismissed),
			}
		}),
	}
}
