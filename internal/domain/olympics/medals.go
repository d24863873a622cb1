package olympics

import (
	"strings"

	"github.com/dara-lab/dara/internal/query"
)

// CountryMedals is a country's medal tally.
type CountryMedals struct {
	Country string `json:"country"`
	Gold    int    `json:"gold"`
	Silver  int    `json:"silver"`
	Bronze  int    `json:"bronze"`
	Total   int    `json:"total"`
}

func countryTallies(medals []Record) []CountryMedals {
	return query.Map(query.GroupBy(medals, nocOf), func(g query.Group[string, Record]) CountryMedals {
		t := tallyOf(g.Rows)
		return CountryMedals{Country: g.Key, Gold: t.Gold, Silver: t.Silver, Bronze: t.Bronze, Total: t.Total}
	})
}

// TopCountries ranks countries by all-time medal count.
func (d *Dataset) TopCountries(topN int) []CountryMedals {
	out := countryTallies(d.medals)
	query.Sort(out, query.Desc(func(c CountryMedals) int { return c.Total }))
	return query.Limit(out, topN)
}

// YearMedals is one year of a country's medal history.
type YearMedals struct {
	Year   int `json:"year"`
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
	Total  int `json:"total"`
}

// CountryHistory is a country's medals broken down by year.
type CountryHistory struct {
	Country      string       `json:"country"`
	TotalMedals  int          `json:"total_medals"`
	MedalsByYear []YearMedals `json:"medals_by_year"`
}

// CountryMedalsByYear returns the medal history of noc, restricted to year
// when year is non-zero.
func (d *Dataset) CountryMedalsByYear(noc string, year int) CountryHistory {
	noc = strings.ToUpper(noc)
	rows := query.Filter(d.medals, func(r Record) bool {
		return r.NOC == noc && (year == 0 || r.Year == year)
	})
	byYear := query.Map(query.GroupBy(rows, yearOf), func(g query.Group[int, Record]) YearMedals {
		t := tallyOf(g.Rows)
		return YearMedals{Year: g.Key, Gold: t.Gold, Silver: t.Silver, Bronze: t.Bronze, Total: t.Total}
	})
	return CountryHistory{Country: noc, TotalMedals: len(rows), MedalsByYear: byYear}
}

// RankedCountry is one row of a Games medal table.
type RankedCountry struct {
	Rank    int    `json:"rank"`
	Country string `json:"country"`
	Gold    int    `json:"gold"`
	Silver  int    `json:"silver"`
	Bronze  int    `json:"bronze"`
	Total   int    `json:"total"`
}

// Ranking is the medal table of one Games.
type Ranking struct {
	Year     int             `json:"year"`
	Season   string          `json:"season"`
	Rankings []RankedCountry `json:"rankings"`
}

// CountryRanking builds the medal table for the Games of year and season,
// ordered by gold, then silver, then bronze.
func (d *Dataset) CountryRanking(year int, season string) Ranking {
	rows := query.Filter(d.medals, func(r Record) bool {
		return r.Year == year && sameFold(r.Season, season)
	})
	tallies := countryTallies(rows)
	query.Sort(tallies,
		query.Desc(func(c CountryMedals) int { return c.Gold }),
		query.Desc(func(c CountryMedals) int { return c.Silver }),
		query.Desc(func(c CountryMedals) int { return c.Bronze }),
	)
	ranked := make([]RankedCountry, 0, len(tallies))
	for i, c := range tallies {
		ranked = append(ranked, RankedCountry{
			Rank: i + 1, Country: c.Country,
			Gold: c.Gold, Silver: c.Silver, Bronze: c.Bronze, Total: c.Total,
		})
	}
	return Ranking{Year: year, Season: season, Rankings: ranked}
}

// ConversionRate is how many of a country's entries in one Games won medals.
type ConversionRate struct {
	Country        string  `json:"country"`
	Athletes       int     `json:"athletes"`
	Medals         int     `json:"medals"`
	ConversionRate float64 `json:"conversion_rate"`
}

// MedalConversionRate returns medals per hundred athletes for every country
// at the Games of year and season.
func (d *Dataset) MedalConversionRate(year int, season string) []ConversionRate {
	rows := query.Filter(d.records, func(r Record) bool {
		return r.Year == year && sameFold(r.Season, season)
	})
	out := query.Map(query.GroupBy(rows, nocOf), func(g query.Group[string, Record]) ConversionRate {
		athletes := query.CountDistinct(g.Rows, athleteID)
		medals := query.Count(g.Rows, Record.HasMedal)
		return ConversionRate{
			Country:        g.Key,
			Athletes:       athletes,
			Medals:         medals,
			ConversionRate: query.Round2(query.Percent(medals, athletes)),
		}
	})
	query.Sort(out, query.Desc(func(c ConversionRate) float64 { return c.ConversionRate }))
	return out
}

// FirstTimeMedalist is a country whose first ever medal came in a given year.
type FirstTimeMedalist struct {
	Country             string `json:"country"`
	Year                int    `json:"year"`
	FirstMedalSport     string `json:"first_medal_sport"`
	FirstMedalType      string `json:"first_medal_type"`
	TotalMedalsThatYear int    `json:"total_medals_that_year"`
}

// FirstTimeMedalists lists countries whose earliest medal year is year.
func (d *Dataset) FirstTimeMedalists(year int) []FirstTimeMedalist {
	out := []FirstTimeMedalist{}
	for _, g := range query.GroupBy(d.medals, nocOf) {
		first, _ := query.Min(query.Values(g.Rows, yearOf))
		if first != year {
			continue
		}
		that := query.Filter(g.Rows, func(r Record) bool { return r.Year == year })
		out = append(out, FirstTimeMedalist{
			Country:             g.Key,
			Year:                year,
			FirstMedalSport:     that[0].Sport,
			FirstMedalType:      that[0].Medal,
			TotalMedalsThatYear: len(that),
		})
	}
	return out
}
