package olympics

import (
	"github.com/dara-lab/dara/internal/query"
)

const (
	namesPerDecade       = 5
	luckyNamesN          = 20
	luckyNameMinAthletes = 50
	familyN              = 30
	familyMinAthletes    = 5
)

func firstName(r Record) (string, bool) { return query.FirstToken(r.Name) }
func surname(r Record) (string, bool)   { return query.LastToken(r.Name) }

// NameCount is a first name and how many entries carry it.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func nameCounts(rows []Record) []NameCount {
	var names []string
	for _, r := range rows {
		if n, ok := firstName(r); ok {
			names = append(names, n)
		}
	}
	return query.Map(query.ValueCounts(names), func(c query.Counted[string]) NameCount {
		return NameCount{Name: c.Key, Count: c.Count}
	})
}

// MostCommonNames counts first names over all entries.
func (d *Dataset) MostCommonNames(topN int) []NameCount {
	return query.Limit(nameCounts(d.records), topN)
}

// DecadeNames holds the most common first names of one decade.
type DecadeNames struct {
	Decade   int         `json:"decade"`
	TopNames []NameCount `json:"top_names"`
}

// NameTrendsByDecade returns the five most common first names per decade.
func (d *Dataset) NameTrendsByDecade() []DecadeNames {
	decade := func(r Record) (int, bool) { return query.Decade(r.Year), true }
	return query.Map(query.GroupBy(d.records, decade), func(g query.Group[int, Record]) DecadeNames {
		return DecadeNames{Decade: g.Key, TopNames: query.Limit(nameCounts(g.Rows), namesPerDecade)}
	})
}

// LuckyName is a first name's medal conversion.
type LuckyName struct {
	Name        string  `json:"name"`
	Athletes    int     `json:"athletes"`
	Medals      int     `json:"medals"`
	SuccessRate float64 `json:"success_rate"`
}

// LuckyNames ranks first names shared by at least 50 distinct athletes by
// medal entries per hundred athletes.
func (d *Dataset) LuckyNames() []LuckyName {
	type ranked struct {
		LuckyName
		raw float64
	}
	var out []ranked
	for _, g := range query.GroupBy(d.records, firstName) {
		athletes := query.CountDistinct(g.Rows, athleteID)
		if athletes < luckyNameMinAthletes {
			continue
		}
		medals := query.Count(g.Rows, Record.HasMedal)
		rate := query.Percent(medals, athletes)
		out = append(out, ranked{
			LuckyName: LuckyName{Name: g.Key, Athletes: athletes, Medals: medals, SuccessRate: query.Round2(rate)},
			raw:       rate,
		})
	}
	query.Sort(out, query.Desc(func(r ranked) float64 { return r.raw }))
	return query.Map(query.Limit(out, luckyNamesN), func(r ranked) LuckyName { return r.LuckyName })
}

// FamilyLegacy is a surname shared by several athletes.
type FamilyLegacy struct {
	Surname             string  `json:"surname"`
	Athletes            int     `json:"athletes"`
	Medals              int     `json:"medals"`
	AvgMedalsPerAthlete float64 `json:"avg_medals_per_athlete"`
}

// FamilyLegacies ranks surnames shared by at least five distinct athletes by
// athlete count.
func (d *Dataset) FamilyLegacies() []FamilyLegacy {
	out := []FamilyLegacy{}
	for _, g := range query.GroupBy(d.records, surname) {
		athletes := query.CountDistinct(g.Rows, athleteID)
		if athletes < familyMinAthletes {
			continue
		}
		medals := query.Count(g.Rows, Record.HasMedal)
		out = append(out, FamilyLegacy{
			Surname:             g.Key,
			Athletes:            athletes,
			Medals:              medals,
			AvgMedalsPerAthlete: query.Round2(query.Ratio(medals, athletes, 0)),
		})
	}
	query.Sort(out, query.Desc(func(f FamilyLegacy) int { return f.Athletes }))
	return query.Limit(out, familyN)
}
