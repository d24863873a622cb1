package olympics

import (
	"cmp"
	"slices"

	"github.com/dara-lab/dara/internal/query"
)

const (
	youngestOldestN   = 10
	mostExperiencedN  = 20
	ageDefyingN       = 30
	ageDefyingMinAge  = 40
	comebackN         = 20
	comebackMinRows   = 3
	comebackMinGap    = 8
	oneHitWonderN     = 50
	oneHitWonderGames = 1
)

// DecoratedAthlete is an athlete's career medal tally.
type DecoratedAthlete struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Sport  string `json:"sport"`
	Gold   int    `json:"gold"`
	Silver int    `json:"silver"`
	Bronze int    `json:"bronze"`
	Total  int    `json:"total"`
}

// MostDecoratedAthletes ranks athletes by total medals, then golds.
func (d *Dataset) MostDecoratedAthletes(topN int) []DecoratedAthlete {
	out := query.Map(query.GroupBy(d.medals, athleteID), func(g query.Group[int, Record]) DecoratedAthlete {
		first := g.Rows[0]
		t := tallyOf(g.Rows)
		return DecoratedAthlete{
			ID: g.Key, Name: first.Name, Team: first.Team, Sport: first.Sport,
			Gold: t.Gold, Silver: t.Silver, Bronze: t.Bronze, Total: t.Total,
		}
	})
	query.Sort(out,
		query.Desc(func(a DecoratedAthlete) int { return a.Total }),
		query.Desc(func(a DecoratedAthlete) int { return a.Gold }),
	)
	return query.Limit(out, topN)
}

// AgedMedalist is a single medal-winning entry with the athlete's age.
type AgedMedalist struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Year  int    `json:"year"`
	Sport string `json:"sport"`
	Event string `json:"event"`
	Medal string `json:"medal"`
	Team  string `json:"team"`
}

func agedMedalist(r Record) AgedMedalist {
	return AgedMedalist{
		Name: r.Name, Age: int(r.Age.V), Year: r.Year,
		Sport: r.Sport, Event: r.Event, Medal: r.Medal, Team: r.Team,
	}
}

// AgeExtremes holds the youngest and oldest medal-winning entries.
type AgeExtremes struct {
	Youngest []AgedMedalist `json:"youngest"`
	Oldest   []AgedMedalist `json:"oldest"`
}

// YoungestOldestMedalists returns the ten youngest and ten oldest medal
// entries with a known age.
func (d *Dataset) YoungestOldestMedalists() AgeExtremes {
	aged := query.Filter(d.medals, func(r Record) bool { return r.Age.Valid })
	age := func(r Record) float64 { return r.Age.V }

	young := slices.Clone(aged)
	query.Sort(young, query.Asc(age))
	old := slices.Clone(aged)
	query.Sort(old, query.Desc(age))

	return AgeExtremes{
		Youngest: query.Map(query.Limit(young, youngestOldestN), agedMedalist),
		Oldest:   query.Map(query.Limit(old, youngestOldestN), agedMedalist),
	}
}

// AgeDefyingAthletes returns medal entries won at 40 or older, oldest first.
func (d *Dataset) AgeDefyingAthletes() []AgedMedalist {
	rows := query.Filter(d.medals, func(r Record) bool {
		return r.Age.Valid && r.Age.V >= ageDefyingMinAge
	})
	query.Sort(rows, query.Desc(func(r Record) float64 { return r.Age.V }))
	return query.Map(query.Limit(rows, ageDefyingN), agedMedalist)
}

// ExperiencedAthlete is an athlete's career span.
type ExperiencedAthlete struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	Olympics    int    `json:"olympics"`
	FirstYear   int    `json:"first_year"`
	LastYear    int    `json:"last_year"`
	TotalMedals int    `json:"total_medals"`
}

// MostExperiencedAthletes ranks athletes by the number of distinct Games
// they entered.
func (d *Dataset) MostExperiencedAthletes() []ExperiencedAthlete {
	out := query.Map(query.GroupBy(d.records, athleteID), func(g query.Group[int, Record]) ExperiencedAthlete {
		years := query.Values(g.Rows, yearOf)
		first, _ := query.Min(years)
		last, _ := query.Max(years)
		return ExperiencedAthlete{
			ID:          g.Key,
			Name:        g.Rows[0].Name,
			Team:        g.Rows[0].Team,
			Olympics:    query.CountDistinct(g.Rows, gamesOf),
			FirstYear:   first,
			LastYear:    last,
			TotalMedals: query.Count(g.Rows, Record.HasMedal),
		}
	})
	query.Sort(out, query.Desc(func(a ExperiencedAthlete) int { return a.Olympics }))
	return query.Limit(out, mostExperiencedN)
}

// Comeback is an athlete who returned after a long break.
type Comeback struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Team            string `json:"team"`
	GapYears        int    `json:"gap_years"`
	YearsBeforeGap  []int  `json:"years_before_break"`
	YearsAfterGap   []int  `json:"years_after_break"`
	MedalsBeforeGap int    `json:"medals_before"`
	MedalsAfterGap  int    `json:"medals_after"`
}

type athleteKey struct {
	ID   int
	Name string
	Team string
}

func compareAthleteKeys(a, b athleteKey) int {
	return cmp.Or(cmp.Compare(a.ID, b.ID), cmp.Compare(a.Name, b.Name), cmp.Compare(a.Team, b.Team))
}

// ComebackAthletes finds athletes with at least three entries whose sorted
// entry years contain a gap of eight years or more. Only the first such gap
// is reported. Results are ordered by gap, longest first.
func (d *Dataset) ComebackAthletes() []Comeback {
	byID := query.Index(query.GroupBy(d.records, athleteID))
	groups := query.GroupByFunc(d.records, func(r Record) (athleteKey, bool) {
		return athleteKey{ID: r.ID, Name: r.Name, Team: r.Team}, true
	}, compareAthleteKeys)

	out := []Comeback{}
	for _, g := range groups {
		years := query.Values(g.Rows, yearOf)
		if len(years) < comebackMinRows {
			continue
		}
		slices.Sort(years)
		c, ok := firstComeback(years, byID[g.Key.ID])
		if !ok {
			continue
		}
		c.ID, c.Name, c.Team = g.Key.ID, g.Key.Name, g.Key.Team
		out = append(out, c)
	}
	query.Sort(out, query.Desc(func(c Comeback) int { return c.GapYears }))
	return query.Limit(out, comebackN)
}

// firstComeback scans sorted years for the first gap of comebackMinGap or
// more. Medal counts are taken over every entry of the athlete.
func firstComeback(years []int, entries []Record) (Comeback, bool) {
	for i := 0; i+1 < len(years); i++ {
		gap := years[i+1] - years[i]
		if gap < comebackMinGap {
			continue
		}
		before, after := years[i], years[i+1]
		return Comeback{
			GapYears:       gap,
			YearsBeforeGap: query.Filter(years, func(y int) bool { return y <= before }),
			YearsAfterGap:  query.Filter(years, func(y int) bool { return y >= after }),
			MedalsBeforeGap: query.Count(entries, func(r Record) bool {
				return r.HasMedal() && r.Year <= before
			}),
			MedalsAfterGap: query.Count(entries, func(r Record) bool {
				return r.HasMedal() && r.Year >= after
			}),
		}, true
	}
	return Comeback{}, false
}

// OneHitWonder is a medallist who appeared at exactly one Games.
type OneHitWonder struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	Year        int    `json:"year"`
	Sport       string `json:"sport"`
	Gold        int    `json:"gold"`
	Silver      int    `json:"silver"`
	Bronze      int    `json:"bronze"`
	TotalMedals int    `json:"total_medals"`
}

// OneHitWonders lists athletes with exactly one distinct Games and at least
// one medal, most medals first.
func (d *Dataset) OneHitWonders() []OneHitWonder {
	out := []OneHitWonder{}
	for _, g := range query.GroupBy(d.records, athleteID) {
		if query.CountDistinct(g.Rows, gamesOf) != oneHitWonderGames {
			continue
		}
		won := query.Filter(g.Rows, Record.HasMedal)
		if len(won) == 0 {
			continue
		}
		first := won[0]
		t := tallyOf(won)
		out = append(out, OneHitWonder{
			ID: g.Key, Name: first.Name, Team: first.Team, Year: first.Year, Sport: first.Sport,
			Gold: t.Gold, Silver: t.Silver, Bronze: t.Bronze, TotalMedals: len(won),
		})
	}
	query.Sort(out, query.Desc(func(o OneHitWonder) int { return o.TotalMedals }))
	return query.Limit(out, oneHitWonderN)
}

// CrossoverAthlete competed at both Summer and Winter Games.
type CrossoverAthlete struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Team         string   `json:"team"`
	SummerSports []string `json:"summer_sports"`
	WinterSports []string `json:"winter_sports"`
	TotalMedals  int      `json:"total_medals"`
	YearsActive  string   `json:"years_active"`
}

// CrossoverAthletes lists athletes who entered more than one season.
func (d *Dataset) CrossoverAthletes() []CrossoverAthlete {
	out := []CrossoverAthlete{}
	season := func(r Record) (string, bool) { return r.Season, r.Season != "" }
	for _, g := range query.GroupBy(d.records, athleteID) {
		if query.CountDistinct(g.Rows, season) < 2 {
			continue
		}
		sportsIn := func(s string) []string {
			return query.Unique(query.Filter(g.Rows, func(r Record) bool { return r.Season == s }), sportOf)
		}
		years := query.Values(g.Rows, yearOf)
		lo, _ := query.Min(years)
		hi, _ := query.Max(years)
		out = append(out, CrossoverAthlete{
			ID:           g.Key,
			Name:         g.Rows[0].Name,
			Team:         g.Rows[0].Team,
			SummerSports: sportsIn(Summer),
			WinterSports: sportsIn(Winter),
			TotalMedals:  query.Count(g.Rows, Record.HasMedal),
			YearsActive:  yearSpan(lo, hi),
		})
	}
	return out
}

// AthleteMatch is one athlete found by a name search.
type AthleteMatch struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Team        string   `json:"team"`
	Sex         string   `json:"sex"`
	Years       []int    `json:"years"`
	TotalMedals int      `json:"total_medals"`
	Sports      []string `json:"sports"`
}

// AthleteSearch is the result of a name search.
type AthleteSearch struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Athletes     []AthleteMatch `json:"athletes"`
}

type searchKey struct {
	athleteKey
	Sex string
}

func compareSearchKeys(a, b searchKey) int {
	return cmp.Or(compareAthleteKeys(a.athleteKey, b.athleteKey), cmp.Compare(a.Sex, b.Sex))
}

// SearchAthletes matches name case-insensitively anywhere in athlete names.
// found is false when nothing matches.
func (d *Dataset) SearchAthletes(name string) (res AthleteSearch, found bool) {
	rows := query.Filter(d.records, func(r Record) bool { return query.ContainsFold(r.Name, name) })
	if len(rows) == 0 {
		return AthleteSearch{Query: name}, false
	}
	groups := query.GroupByFunc(rows, func(r Record) (searchKey, bool) {
		return searchKey{athleteKey{ID: r.ID, Name: r.Name, Team: r.Team}, r.Sex}, true
	}, compareSearchKeys)

	athletes := query.Map(groups, func(g query.Group[searchKey, Record]) AthleteMatch {
		return AthleteMatch{
			ID:          g.Key.ID,
			Name:        g.Key.Name,
			Team:        g.Key.Team,
			Sex:         g.Key.Sex,
			Years:       query.Distinct(g.Rows, yearOf),
			TotalMedals: query.Count(g.Rows, Record.HasMedal),
			Sports:      query.Unique(g.Rows, sportOf),
		}
	})
	return AthleteSearch{Query: name, TotalResults: len(athletes), Athletes: athletes}, true
}
