// Package olympics answers analytical queries over the athlete_events
// history: one record per athlete per event per Games.
package olympics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dara-lab/dara/internal/query"
	"github.com/dara-lab/dara/internal/table"
)

// Medal values carried by medal rows.
const (
	Gold   = "Gold"
	Silver = "Silver"
	Bronze = "Bronze"
)

// Season values.
const (
	Summer = "Summer"
	Winter = "Winter"
)

// Schema is the declared layout of athlete_events.csv.
func Schema() table.Schema {
	return table.Schema{
		Name: "athlete_events",
		Columns: []table.Column{
			{Name: "ID", Type: table.Int},
			{Name: "Name", Type: table.String},
			{Name: "Sex", Type: table.String},
			{Name: "Age", Type: table.NullableFloat},
			{Name: "Height", Type: table.NullableFloat},
			{Name: "Weight", Type: table.NullableFloat},
			{Name: "Team", Type: table.String},
			{Name: "NOC", Type: table.String},
			{Name: "Games", Type: table.String},
			{Name: "Year", Type: table.Int},
			{Name: "Season", Type: table.String},
			{Name: "City", Type: table.String},
			{Name: "Sport", Type: table.String},
			{Name: "Event", Type: table.String},
			{Name: "Medal", Type: table.NullableString},
		},
	}
}

// Record is one athlete entry in one event. Medal is empty for non-medal
// entries.
type Record struct {
	ID     int
	Name   string
	Sex    string
	Age    table.NullFloat
	Height table.NullFloat
	Weight table.NullFloat
	Team   string
	NOC    string
	Games  string
	Year   int
	Season string
	City   string
	Sport  string
	Event  string
	Medal  string
}

// HasMedal reports whether the entry won a medal.
func (r Record) HasMedal() bool { return r.Medal != "" }

// Dataset is the immutable, fully loaded athlete history. All methods are
// safe for concurrent use.
type Dataset struct {
	records []Record
	medals  []Record
}

// New builds a dataset from records. The slice is copied.
func New(records []Record) *Dataset {
	recs := make([]Record, len(records))
	copy(recs, records)
	return &Dataset{
		records: recs,
		medals:  query.Filter(recs, Record.HasMedal),
	}
}

// Load reads and decodes athlete_events.csv.
func Load(ctx context.Context, path string) (*Dataset, error) {
	t, err := table.Load(ctx, path, Schema())
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// FromTable decodes a loaded table into records.
func FromTable(t *table.Table) (*Dataset, error) {
	b := table.Bind(t)
	id := b.Int("ID")
	name := b.String("Name")
	sex := b.String("Sex")
	age := b.NullFloat("Age")
	height := b.NullFloat("Height")
	weight := b.NullFloat("Weight")
	team := b.String("Team")
	noc := b.String("NOC")
	games := b.String("Games")
	year := b.Int("Year")
	season := b.String("Season")
	city := b.String("City")
	sport := b.String("Sport")
	event := b.String("Event")
	medal := b.NullString("Medal")
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("olympics: %w", err)
	}

	recs := make([]Record, t.Len())
	for i := range recs {
		recs[i] = Record{
			ID:     int(id.At(i)),
			Name:   name.At(i),
			Sex:    sex.At(i),
			Age:    age.At(i),
			Height: height.At(i),
			Weight: weight.At(i),
			Team:   team.At(i),
			NOC:    noc.At(i),
			Games:  games.At(i),
			Year:   int(year.At(i)),
			Season: season.At(i),
			City:   city.At(i),
			Sport:  sport.At(i),
			Event:  event.At(i),
			Medal:  medal.At(i).V,
		}
	}
	return &Dataset{records: recs, medals: query.Filter(recs, Record.HasMedal)}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Summary describes the dataset as a whole.
type Summary struct {
	TotalRecords   int    `json:"total_records"`
	YearsCovered   string `json:"years_covered"`
	TotalAthletes  int    `json:"total_athletes"`
	TotalCountries int    `json:"total_countries"`
}

// Summary returns the record count, year span, and distinct athletes and
// countries.
func (d *Dataset) Summary() Summary {
	years := query.Values(d.records, yearOf)
	lo, _ := query.Min(years)
	hi, _ := query.Max(years)
	return Summary{
		TotalRecords:   len(d.records),
		YearsCovered:   yearSpan(lo, hi),
		TotalAthletes:  query.CountDistinct(d.records, athleteID),
		TotalCountries: query.CountDistinct(d.records, nocOf),
	}
}

// Key functions shared by the queries.

func athleteID(r Record) (int, bool)  { return r.ID, true }
func nocOf(r Record) (string, bool)   { return r.NOC, r.NOC != "" }
func sportOf(r Record) (string, bool) { return r.Sport, r.Sport != "" }
func yearOf(r Record) (int, bool)     { return r.Year, true }
func gamesOf(r Record) (string, bool) { return r.Games, r.Games != "" }
func eventOf(r Record) (string, bool) { return r.Event, r.Event != "" }

func ageOf(r Record) (float64, bool)    { return r.Age.V, r.Age.Valid }
func heightOf(r Record) (float64, bool) { return r.Height.V, r.Height.Valid }
func weightOf(r Record) (float64, bool) { return r.Weight.V, r.Weight.Valid }

func yearSpan(lo, hi int) string {
	return strconv.Itoa(lo) + " - " + strconv.Itoa(hi)
}

// tally counts medals by colour.
type tally struct {
	Gold   int
	Silver int
	Bronze int
	Total  int
}

func (t *tally) add(medal string) {
	switch medal {
	case Gold:
		t.Gold++
	case Silver:
		t.Silver++
	case Bronze:
		t.Bronze++
	default:
		return
	}
	t.Total++
}

func tallyOf(rows []Record) tally {
	var t tally
	for _, r := range rows {
		t.add(r.Medal)
	}
	return t
}

func sameFold(a, b string) bool { return strings.EqualFold(a, b) }
