package ipl_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dara-lab/dara/internal/domain/ipl"
	"github.com/dara-lab/dara/internal/table"
	. "github.com/smartystreets/goconvey/convey"
)

func ball(match, innings, over, n int, batter, bowler string, batRuns, extras int, team string) ipl.Ball {
	return ipl.Ball{
		MatchID: match, Innings: innings, Over: over, BallNumber: n,
		Batter: batter, Bowler: bowler,
		BatsmanRun: batRuns, ExtrasRun: extras, TotalRun: batRuns + extras,
		BattingTeam: team,
	}
}

func newFixture() *ipl.Dataset {
	matches := []ipl.Match{
		{ID: 1, Team1: "CSK", Team2: "MI", WinningTeam: "CSK", WonBy: "Runs"},
		{ID: 2, Team1: "MI", Team2: "CSK", WinningTeam: "MI", WonBy: "Wickets"},
		{ID: 3, Team1: "CSK", Team2: "RCB", WonBy: "NoResults"},
		{ID: 4, Team1: "RCB", Team2: "MI", WinningTeam: "RCB", WonBy: ipl.TieResult},
	}

	var balls []ipl.Ball
	for i, runs := range []int{1, 4, 0, 6, 1, 0} {
		b := ball(1, 1, 0, i+1, "Dhoni", "Bumrah", runs, 0, "CSK")
		if i == 2 {
			b.IsWicket = true
			b.PlayerOut = "Dhoni"
			b.Kind = "bowled"
		}
		balls = append(balls, b)
	}
	balls = append(balls, ball(1, 1, 1, 1, "Jadeja", "Bumrah", 2, 0, "CSK"))
	for i := 0; i < 6; i++ {
		balls = append(balls, ball(1, 2, 0, i+1, "Rohit", "Jadeja", 1, 0, "MI"))
	}
	wide := ball(1, 2, 0, 7, "Rohit", "Jadeja", 0, 1, "MI")
	wide.ExtraType = "wides"
	balls = append(balls, wide)
	balls = append(balls, ball(99, 1, 0, 1, "Ghost", "Nobody", 3, 0, "XI"))

	return ipl.New(balls, matches)
}

func TestTeamRecord(t *testing.T) {
	Convey("Given a fixture season", t, func() {
		d := newFixture()

		Convey("When the record of a team is requested", func() {
			got := d.TeamRecord("CSK")

			Convey("Then results and run rate are aggregated", func() {
				So(got.TotalMatches, ShouldEqual, 3)
				So(got.Wins, ShouldEqual, 1)
				So(got.Losses, ShouldEqual, 1)
				So(got.Ties, ShouldEqual, 0)
				So(got.RunRate, ShouldEqual, 7.0)
				So(got.VsTeam, ShouldResemble, []ipl.TeamWins{
					{WinningTeam: "CSK", Wins: 1},
					{WinningTeam: "MI", Wins: 1},
				})
			})
		})

		Convey("Ties are counted from the result type", func() {
			So(d.TeamRecord("RCB").Ties, ShouldEqual, 1)
		})

		Convey("An unknown team has an empty record and no division error", func() {
			got := d.TeamRecord("XYZ")
			So(got.TotalMatches, ShouldEqual, 0)
			So(got.RunRate, ShouldEqual, 0.0)
			So(got.VsTeam, ShouldNotBeNil)
			So(got.VsTeam, ShouldBeEmpty)
		})
	})

	Convey("Given the same over number batted in two matches", t, func() {
		d := ipl.New(
			[]ipl.Ball{
				ball(1, 1, 0, 1, "Dhoni", "Bumrah", 6, 0, "CSK"),
				ball(2, 1, 0, 1, "Dhoni", "Bumrah", 6, 0, "CSK"),
				ball(2, 1, 0, 2, "Dhoni", "Bumrah", 6, 0, "CSK"),
			},
			[]ipl.Match{{ID: 1, Team1: "CSK", Team2: "MI"}, {ID: 2, Team1: "CSK", Team2: "MI"}},
		)

		Convey("Then each match's over counts separately in the run rate", func() {
			So(d.TeamRecord("CSK").RunRate, ShouldEqual, 9.0)
		})
	})
}

func TestBowlerRecord(t *testing.T) {
	Convey("Given a fixture season", t, func() {
		d := newFixture()

		Convey("Economy is runs per six balls", func() {
			got := d.BowlerRecord("Bumrah")
			So(got.Overall.BallsBowled, ShouldEqual, 7)
			So(got.Overall.RunsConceded, ShouldEqual, 14)
			So(got.Overall.Wickets, ShouldEqual, 1)
			So(got.Overall.Economy, ShouldEqual, 12.0)
			So(got.VsTeam, ShouldResemble, []ipl.BowlingVsTeam{
				{BattingTeam: "CSK", BallsBowled: 7, RunsConceded: 14, Wickets: 1},
			})
		})

		Convey("A bowler with no deliveries has zero economy", func() {
			got := d.BowlerRecord("Unknown")
			So(got.Overall.BallsBowled, ShouldEqual, 0)
			So(got.Overall.Economy, ShouldEqual, 0.0)
		})
	})
}

func TestBatsmanRecord(t *testing.T) {
	Convey("Given a fixture season", t, func() {
		d := newFixture()

		Convey("Average divides runs by dismissals", func() {
			got := d.BatsmanRecord("Dhoni")
			So(got.Overall.Runs, ShouldEqual, 12)
			So(got.Overall.BallsFaced, ShouldEqual, 6)
			So(got.Overall.Average, ShouldEqual, 12.0)
			So(got.Overall.StrikeRate, ShouldEqual, 200.0)
			So(got.VsTeam, ShouldResemble, []ipl.BattingVsTeam{
				{BowlingTeam: "MI", Runs: 12, Balls: 6, Dismissals: 1},
			})
		})

		Convey("An undismissed batter's average is the run total", func() {
			got := d.BatsmanRecord("Jadeja")
			So(got.Overall.Average, ShouldEqual, 2.0)
		})

		Convey("Extras count as balls faced but not runs", func() {
			got := d.BatsmanRecord("Rohit")
			So(got.Overall.Runs, ShouldEqual, 6)
			So(got.Overall.BallsFaced, ShouldEqual, 7)
			So(got.Overall.StrikeRate, ShouldEqual, 85.71)
			So(got.VsTeam[0].BowlingTeam, ShouldEqual, "CSK")
		})

		Convey("Deliveries without a match have no opponent", func() {
			got := d.BatsmanRecord("Ghost")
			So(got.Overall.Runs, ShouldEqual, 3)
			So(got.VsTeam, ShouldBeEmpty)
		})

		Convey("A batter with no deliveries has zero strike rate", func() {
			got := d.BatsmanRecord("Unknown")
			So(got.Overall.StrikeRate, ShouldEqual, 0.0)
			So(got.Overall.Average, ShouldEqual, 0.0)
		})
	})
}

func TestPlayerLists(t *testing.T) {
	Convey("Given a fixture season", t, func() {
		d := newFixture()

		So(d.Bowlers(), ShouldResemble, []string{"Bumrah", "Jadeja", "Nobody"})
		So(d.Batsmen(), ShouldResemble, []string{"Dhoni", "Ghost", "Jadeja", "Rohit"})
	})
}

func TestFromTables(t *testing.T) {
	Convey("Given ball and match CSV files", t, func() {
		ballsCSV := strings.Join([]string{
			"ID,innings,overs,ballnumber,batter,bowler,non-striker,extra_type,batsman_run,extras_run,total_run,non_boundary,isWicketDelivery,player_out,kind,fielders_involved,BattingTeam",
			"1312200,1,0,1,YBK Jaiswal,Mohammed Shami,JC Buttler,NA,0,0,0,0,0,NA,NA,NA,Rajasthan Royals",
			"1312200,1,0,2,YBK Jaiswal,Mohammed Shami,JC Buttler,legbyes,0,1,1,0,0,NA,NA,NA,Rajasthan Royals",
			"1312200,1,0,3,JC Buttler,Mohammed Shami,YBK Jaiswal,NA,0,0,0,0,1,JC Buttler,caught,HH Pandya,Rajasthan Royals",
		}, "\n")
		matchesCSV := strings.Join([]string{
			"ID,City,Date,Season,MatchNumber,Team1,Team2,Venue,TossWinner,TossDecision,SuperOver,WinningTeam,WonBy,Margin,method,Player_of_Match",
			"1312200,Ahmedabad,2022-05-29,2022,Final,Rajasthan Royals,Gujarat Titans,Narendra Modi Stadium,Rajasthan Royals,bat,N,Gujarat Titans,Wickets,7,NA,HH Pandya",
		}, "\n")

		bt, err := table.Read(context.Background(), strings.NewReader(ballsCSV), ipl.BallsSchema())
		So(err, ShouldBeNil)
		mt, err := table.Read(context.Background(), strings.NewReader(matchesCSV), ipl.MatchesSchema())
		So(err, ShouldBeNil)

		d, err := ipl.FromTables(bt, mt)
		So(err, ShouldBeNil)
		So(d.Len(), ShouldEqual, 3)
		So(d.MatchCount(), ShouldEqual, 1)

		bowler := d.BowlerRecord("Mohammed Shami")
		So(bowler.Overall.Wickets, ShouldEqual, 1)
		So(bowler.Overall.RunsConceded, ShouldEqual, 1)

		batter := d.BatsmanRecord("JC Buttler")
		So(batter.VsTeam[0].BowlingTeam, ShouldEqual, "Gujarat Titans")
		So(d.TeamRecord("Gujarat Titans").Wins, ShouldEqual, 1)
	})
}
