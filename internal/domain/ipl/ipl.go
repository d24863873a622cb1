// Package ipl answers cricket queries over IPL ball-by-ball deliveries joined
// with match results.
package ipl

import (
	"context"
	"fmt"

	"github.com/dara-lab/dara/internal/query"
	"github.com/dara-lab/dara/internal/table"
)

// TieResult is the WonBy value of a tied match.
const TieResult = "Tie"

// BallsSchema is the declared layout of the ball-by-ball file.
func BallsSchema() table.Schema {
	return table.Schema{
		Name: "ipl_balls",
		Columns: []table.Column{
			{Name: "ID", Type: table.Int},
			{Name: "innings", Type: table.Int},
			{Name: "overs", Type: table.Int},
			{Name: "ballnumber", Type: table.Int},
			{Name: "batter", Type: table.String},
			{Name: "bowler", Type: table.String},
			{Name: "non-striker", Type: table.String},
			{Name: "extra_type", Type: table.NullableString},
			{Name: "batsman_run", Type: table.Int},
			{Name: "extras_run", Type: table.Int},
			{Name: "total_run", Type: table.Int},
			{Name: "non_boundary", Type: table.Int},
			{Name: "isWicketDelivery", Type: table.Int},
			{Name: "player_out", Type: table.NullableString},
			{Name: "kind", Type: table.NullableString},
			{Name: "fielders_involved", Type: table.NullableString},
			{Name: "BattingTeam", Type: table.String},
		},
	}
}

// MatchesSchema is the declared layout of the match results file.
func MatchesSchema() table.Schema {
	return table.Schema{
		Name: "ipl_matches",
		Columns: []table.Column{
			{Name: "ID", Type: table.Int},
			{Name: "City", Type: table.NullableString},
			{Name: "Date", Type: table.String},
			{Name: "Season", Type: table.String},
			{Name: "MatchNumber", Type: table.String},
			{Name: "Team1", Type: table.String},
			{Name: "Team2", Type: table.String},
			{Name: "Venue", Type: table.String},
			{Name: "TossWinner", Type: table.String},
			{Name: "TossDecision", Type: table.String},
			{Name: "SuperOver", Type: table.NullableString},
			{Name: "WinningTeam", Type: table.NullableString},
			{Name: "WonBy", Type: table.String},
			{Name: "Margin", Type: table.NullableFloat},
		},
	}
}

// Ball is one delivery.
type Ball struct {
	MatchID          int
	Innings          int
	Over             int
	BallNumber       int
	Batter           string
	Bowler           string
	NonStriker       string
	ExtraType        string
	BatsmanRun       int
	ExtrasRun        int
	TotalRun         int
	NonBoundary      int
	IsWicket         bool
	PlayerOut        string
	Kind             string
	FieldersInvolved string
	BattingTeam      string
}

// Match is one match result. WinningTeam is empty for matches without a
// result.
type Match struct {
	ID           int
	City         string
	Date         string
	Season       string
	MatchNumber  string
	Team1        string
	Team2        string
	Venue        string
	TossWinner   string
	TossDecision string
	SuperOver    string
	WinningTeam  string
	WonBy        string
	Margin       table.NullFloat
}

// Plays reports whether team is one of the two sides.
func (m Match) Plays(team string) bool { return m.Team1 == team || m.Team2 == team }

// Opponent returns the side facing team, or "" when team did not play.
func (m Match) Opponent(team string) string {
	switch team {
	case m.Team1:
		return m.Team2
	case m.Team2:
		return m.Team1
	}
	return ""
}

// Dataset holds deliveries left-joined to their matches. It is immutable and
// safe for concurrent use.
type Dataset struct {
	balls   []Ball
	matches []Match
	byID    map[int]Match
}

// New builds a dataset from deliveries and matches. Slices are copied.
func New(balls []Ball, matches []Match) *Dataset {
	d := &Dataset{
		balls:   append([]Ball(nil), balls...),
		matches: append([]Match(nil), matches...),
		byID:    make(map[int]Match, len(matches)),
	}
	for _, m := range d.matches {
		d.byID[m.ID] = m
	}
	return d
}

// Load reads and joins the ball-by-ball and match files.
func Load(ctx context.Context, ballsPath, matchesPath string) (*Dataset, error) {
	bt, err := table.Load(ctx, ballsPath, BallsSchema())
	if err != nil {
		return nil, err
	}
	mt, err := table.Load(ctx, matchesPath, MatchesSchema())
	if err != nil {
		return nil, err
	}
	return FromTables(bt, mt)
}

// FromTables decodes loaded ball and match tables.
func FromTables(bt, mt *table.Table) (*Dataset, error) {
	balls, err := decodeBalls(bt)
	if err != nil {
		return nil, err
	}
	matches, err := decodeMatches(mt)
	if err != nil {
		return nil, err
	}
	return New(balls, matches), nil
}

func decodeBalls(t *table.Table) ([]Ball, error) {
	b := table.Bind(t)
	id := b.Int("ID")
	innings := b.Int("innings")
	overs := b.Int("overs")
	ballNumber := b.Int("ballnumber")
	batter := b.String("batter")
	bowler := b.String("bowler")
	nonStriker := b.String("non-striker")
	extraType := b.NullString("extra_type")
	batsmanRun := b.Int("batsman_run")
	extrasRun := b.Int("extras_run")
	totalRun := b.Int("total_run")
	nonBoundary := b.Int("non_boundary")
	wicket := b.Int("isWicketDelivery")
	playerOut := b.NullString("player_out")
	kind := b.NullString("kind")
	fielders := b.NullString("fielders_involved")
	battingTeam := b.String("BattingTeam")
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("ipl balls: %w", err)
	}

	out := make([]Ball, t.Len())
	for i := range out {
		out[i] = Ball{
			MatchID:          int(id.At(i)),
			Innings:          int(innings.At(i)),
			Over:             int(overs.At(i)),
			BallNumber:       int(ballNumber.At(i)),
			Batter:           batter.At(i),
			Bowler:           bowler.At(i),
			NonStriker:       nonStriker.At(i),
			ExtraType:        extraType.At(i).V,
			BatsmanRun:       int(batsmanRun.At(i)),
			ExtrasRun:        int(extrasRun.At(i)),
			TotalRun:         int(totalRun.At(i)),
			NonBoundary:      int(nonBoundary.At(i)),
			IsWicket:         wicket.At(i) == 1,
			PlayerOut:        playerOut.At(i).V,
			Kind:             kind.At(i).V,
			FieldersInvolved: fielders.At(i).V,
			BattingTeam:      battingTeam.At(i),
		}
	}
	return out, nil
}

func decodeMatches(t *table.Table) ([]Match, error) {
	b := table.Bind(t)
	id := b.Int("ID")
	city := b.NullString("City")
	date := b.String("Date")
	season := b.String("Season")
	number := b.String("MatchNumber")
	team1 := b.String("Team1")
	team2 := b.String("Team2")
	venue := b.String("Venue")
	tossWinner := b.String("TossWinner")
	tossDecision := b.String("TossDecision")
	superOver := b.NullString("SuperOver")
	winner := b.NullString("WinningTeam")
	wonBy := b.String("WonBy")
	margin := b.NullFloat("Margin")
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("ipl matches: %w", err)
	}

	out := make([]Match, t.Len())
	for i := range out {
		out[i] = Match{
			ID:           int(id.At(i)),
			City:         city.At(i).V,
			Date:         date.At(i),
			Season:       season.At(i),
			MatchNumber:  number.At(i),
			Team1:        team1.At(i),
			Team2:        team2.At(i),
			Venue:        venue.At(i),
			TossWinner:   tossWinner.At(i),
			TossDecision: tossDecision.At(i),
			SuperOver:    superOver.At(i).V,
			WinningTeam:  winner.At(i).V,
			WonBy:        wonBy.At(i),
			Margin:       margin.At(i),
		}
	}
	return out, nil
}

// Len returns the number of deliveries.
func (d *Dataset) Len() int { return len(d.balls) }

// MatchCount returns the number of matches.
func (d *Dataset) MatchCount() int { return len(d.matches) }

// bowlingTeam is the side bowling a delivery, or "" when the delivery has no
// matching match.
func (d *Dataset) bowlingTeam(b Ball) string {
	m, ok := d.byID[b.MatchID]
	if !ok {
		return ""
	}
	return m.Opponent(b.BattingTeam)
}

func bowlerOf(b Ball) (string, bool) { return b.Bowler, b.Bowler != "" }
func batterOf(b Ball) (string, bool) { return b.Batter, b.Batter != "" }

// Bowlers returns every bowler name in ascending order.
func (d *Dataset) Bowlers() []string { return query.Distinct(d.balls, bowlerOf) }

// Batsmen returns every batter name in ascending order.
func (d *Dataset) Batsmen() []string { return query.Distinct(d.balls, batterOf) }
