package olympics

import (
	"slices"

	"github.com/dara-lab/dara/internal/query"
)

const (
	participationGrowthN = 30
	underdogN            = 20
	underdogMaxAthletes  = 100
	droughtN             = 30
	droughtMinYears      = 12
	goldRushN            = 30
	smallCountryN        = 30
	smallCountryMax      = 1000
)

// ParticipationGrowth compares a country's first and latest Games squads.
type ParticipationGrowth struct {
	Country           string  `json:"country"`
	FirstYear         int     `json:"first_year"`
	LastYear          int     `json:"last_year"`
	FirstYearAthletes int     `json:"first_year_athletes"`
	LastYearAthletes  int     `json:"last_year_athletes"`
	Growth            int     `json:"growth"`
	GrowthRate        float64 `json:"growth_rate"`
}

// CountryParticipationGrowth ranks countries by how much their squad grew
// between their first and last appearance year.
func (d *Dataset) CountryParticipationGrowth() []ParticipationGrowth {
	out := query.Map(query.GroupBy(d.records, nocOf), func(g query.Group[string, Record]) ParticipationGrowth {
		years := query.Values(g.Rows, yearOf)
		first, _ := query.Min(years)
		last, _ := query.Max(years)
		athletesIn := func(year int) int {
			return query.CountDistinct(query.Filter(g.Rows, func(r Record) bool { return r.Year == year }), athleteID)
		}
		fa, la := athletesIn(first), athletesIn(last)
		return ParticipationGrowth{
			Country:           g.Key,
			FirstYear:         first,
			LastYear:          last,
			FirstYearAthletes: fa,
			LastYearAthletes:  la,
			Growth:            la - fa,
			GrowthRate:        query.Round2(query.Percent(la-fa, fa)),
		}
	})
	query.Sort(out, query.Desc(func(p ParticipationGrowth) int { return p.Growth }))
	return query.Limit(out, participationGrowthN)
}

// Underdog is a country with a small team and at least one gold.
type Underdog struct {
	Country     string `json:"country"`
	Athletes    int    `json:"athletes"`
	Gold        int    `json:"gold"`
	TotalMedals int    `json:"total_medals"`
}

// UnderdogNations lists countries with fewer than 100 athletes in total and
// at least one gold, most golds first and smaller teams first on ties.
func (d *Dataset) UnderdogNations() []Underdog {
	out := []Underdog{}
	for _, g := range query.GroupBy(d.records, nocOf) {
		athletes := query.CountDistinct(g.Rows, athleteID)
		if athletes >= underdogMaxAthletes {
			continue
		}
		t := tallyOf(g.Rows)
		if t.Gold == 0 {
			continue
		}
		out = append(out, Underdog{Country: g.Key, Athletes: athletes, Gold: t.Gold, TotalMedals: t.Total})
	}
	query.Sort(out,
		query.Desc(func(u Underdog) int { return u.Gold }),
		query.Asc(func(u Underdog) int { return u.Athletes }),
	)
	return query.Limit(out, underdogN)
}

// ConsistentCountry won medals at many distinct Games years.
type ConsistentCountry struct {
	Country              string  `json:"country"`
	OlympicsParticipated int     `json:"olympics_participated"`
	TotalMedals          int     `json:"total_medals"`
	AvgMedalsPerOlympics float64 `json:"avg_medals_per_olympics"`
}

// ConsistentCountries lists countries that won medals in at least
// minOlympics distinct years.
func (d *Dataset) ConsistentCountries(minOlympics int) []ConsistentCountry {
	out := []ConsistentCountry{}
	for _, g := range query.GroupBy(d.medals, nocOf) {
		years := query.CountDistinct(g.Rows, yearOf)
		if years < minOlympics {
			continue
		}
		out = append(out, ConsistentCountry{
			Country:              g.Key,
			OlympicsParticipated: years,
			TotalMedals:          len(g.Rows),
			AvgMedalsPerOlympics: query.Round2(query.Ratio(len(g.Rows), years, 0)),
		})
	}
	query.Sort(out, query.Desc(func(c ConsistentCountry) int { return c.OlympicsParticipated }))
	return out
}

// Drought is the longest wait between two medal years of a country.
type Drought struct {
	Country            string `json:"country"`
	DroughtYears       int    `json:"drought_years"`
	FromYear           int    `json:"from_year"`
	ToYear             int    `json:"to_year"`
	TotalMedalsAllTime int    `json:"total_medals_all_time"`
}

// MedalDroughts finds, per country, the largest gap between consecutive
// medal years (the earliest one when several are equal) and keeps gaps of
// twelve years or more.
func (d *Dataset) MedalDroughts() []Drought {
	out := []Drought{}
	for _, g := range query.GroupBy(d.medals, nocOf) {
		years := query.Values(g.Rows, yearOf)
		if len(years) < 2 {
			continue
		}
		slices.Sort(years)
		best, from, to := 0, 0, 0
		for i := 0; i+1 < len(years); i++ {
			if gap := years[i+1] - years[i]; gap > best {
				best, from, to = gap, years[i], years[i+1]
			}
		}
		if best < droughtMinYears {
			continue
		}
		out = append(out, Drought{
			Country: g.Key, DroughtYears: best, FromYear: from, ToYear: to,
			TotalMedalsAllTime: len(years),
		})
	}
	query.Sort(out, query.Desc(func(x Drought) int { return x.DroughtYears }))
	return query.Limit(out, droughtN)
}

// GoldRush is a country-year haul far above the country's average.
type GoldRush struct {
	Country       string  `json:"country"`
	Year          int     `json:"year"`
	MedalsWon     int     `json:"medals_won"`
	AverageMedals float64 `json:"average_medals"`
	Spike         float64 `json:"spike"`
}

// GoldRushMoments finds country-years whose medal count exceeds the country's
// mean medals per medal-winning year by at least threshold.
func (d *Dataset) GoldRushMoments(threshold int) []GoldRush {
	type yearCount struct {
		year   int
		medals int
	}
	type spike struct {
		GoldRush
		raw float64
	}
	var spikes []spike
	for _, g := range query.GroupBy(d.medals, nocOf) {
		counts := query.Map(query.GroupBy(g.Rows, yearOf), func(y query.Group[int, Record]) yearCount {
			return yearCount{year: y.Key, medals: len(y.Rows)}
		})
		avg := query.Mean(query.Map(counts, func(c yearCount) int { return c.medals }))
		for _, c := range counts {
			s := float64(c.medals) - avg
			if s < float64(threshold) {
				continue
			}
			spikes = append(spikes, spike{
				GoldRush: GoldRush{
					Country:       g.Key,
					Year:          c.year,
					MedalsWon:     c.medals,
					AverageMedals: query.Round2(avg),
					Spike:         query.Round2(s),
				},
				raw: s,
			})
		}
	}
	query.Sort(spikes, query.Desc(func(s spike) float64 { return s.raw }))
	return query.Map(query.Limit(spikes, goldRushN), func(s spike) GoldRush { return s.GoldRush })
}

// SmallCountrySuccess is a small team's medal efficiency.
type SmallCountrySuccess struct {
	Country         string  `json:"country"`
	TotalAthletes   int     `json:"total_athletes"`
	TotalMedals     int     `json:"total_medals"`
	MedalPerAthlete float64 `json:"medal_per_athlete"`
}

// SmallCountrySuccesses ranks countries with fewer than 1000 distinct
// athletes and at least one medal by medals per athlete.
func (d *Dataset) SmallCountrySuccesses() []SmallCountrySuccess {
	type ranked struct {
		SmallCountrySuccess
		raw float64
	}
	var out []ranked
	for _, g := range query.GroupBy(d.records, nocOf) {
		athletes := query.CountDistinct(g.Rows, athleteID)
		medals := query.Count(g.Rows, Record.HasMedal)
		if medals == 0 || athletes >= smallCountryMax {
			continue
		}
		ratio := query.Ratio(medals, athletes, 0)
		out = append(out, ranked{
			SmallCountrySuccess: SmallCountrySuccess{
				Country:         g.Key,
				TotalAthletes:   athletes,
				TotalMedals:     medals,
				MedalPerAthlete: query.Round(ratio, 3),
			},
			raw: ratio,
		})
	}
	query.Sort(out, query.Desc(func(r ranked) float64 { return r.raw }))
	return query.Map(query.Limit(out, smallCountryN), func(r ranked) SmallCountrySuccess { return r.SmallCountrySuccess })
}
