package olympics

import (
	"cmp"

	"github.com/dara-lab/dara/internal/query"
)

// hostNations maps host city names as spelled in the dataset to the host
// country's NOC code.
var hostNations = map[string]string{ //nolint:gochecknoglobals // read-only lookup
	"Albertville":            "FRA",
	"Amsterdam":              "NED",
	"Antwerpen":              "BEL",
	"Athina":                 "GRE",
	"Atlanta":                "USA",
	"Barcelona":              "ESP",
	"Beijing":                "CHN",
	"Berlin":                 "GER",
	"Calgary":                "CAN",
	"Chamonix":               "FRA",
	"Cortina d'Ampezzo":      "ITA",
	"Garmisch-Partenkirchen": "GER",
	"Grenoble":               "FRA",
	"Helsinki":               "FIN",
	"Innsbruck":              "AUT",
	"Lake Placid":            "USA",
	"Lillehammer":            "NOR",
	"London":                 "GBR",
	"Los Angeles":            "USA",
	"Melbourne":              "AUS",
	"Mexico City":            "MEX",
	"Montreal":               "CAN",
	"Moskva":                 "URS",
	"Munich":                 "FRG",
	"Nagano":                 "JPN",
	"Oslo":                   "NOR",
	"Paris":                  "FRA",
	"Rio de Janeiro":         "BRA",
	"Roma":                   "ITA",
	"Salt Lake City":         "USA",
	"Sankt Moritz":           "SUI",
	"Sapporo":                "JPN",
	"Sarajevo":               "YUG",
	"Seoul":                  "KOR",
	"Sochi":                  "RUS",
	"Squaw Valley":           "USA",
	"St. Louis":              "USA",
	"Stockholm":              "SWE",
	"Sydney":                 "AUS",
	"Tokyo":                  "JPN",
	"Torino":                 "ITA",
	"Vancouver":              "CAN",
}

// boycottYears are the Summer Games hit by large boycotts.
var boycottYears = []int{1976, 1980, 1984} //nolint:gochecknoglobals // read-only

type edition struct {
	Year   int
	Season string
	City   string
}

func compareEditions(a, b edition) int {
	return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Season, b.Season), cmp.Compare(a.City, b.City))
}

func editionOf(r Record) (edition, bool) {
	return edition{Year: r.Year, Season: r.Season, City: r.City}, true
}

// HostCity is one Games edition and its size.
type HostCity struct {
	Year      int    `json:"year"`
	Season    string `json:"season"`
	City      string `json:"city"`
	Athletes  int    `json:"athletes"`
	Countries int    `json:"countries"`
}

// HostCities lists every (year, season, city) edition in chronological order.
func (d *Dataset) HostCities() []HostCity {
	return query.Map(query.GroupByFunc(d.records, editionOf, compareEditions), func(g query.Group[edition, Record]) HostCity {
		return HostCity{
			Year:      g.Key.Year,
			Season:    g.Key.Season,
			City:      g.Key.City,
			Athletes:  query.CountDistinct(g.Rows, athleteID),
			Countries: query.CountDistinct(g.Rows, nocOf),
		}
	})
}

// HomeAdvantage compares a host's medals at home with its away average.
type HomeAdvantage struct {
	Year            int     `json:"year"`
	Season          string  `json:"season"`
	City            string  `json:"city"`
	HostCountry     string  `json:"host_country"`
	HomeMedals      int     `json:"home_medals"`
	AvgAwayMedals   float64 `json:"avg_away_medals"`
	Boost           float64 `json:"boost"`
	BoostPercentage float64 `json:"boost_percentage"`
}

// HomeAdvantageAnalysis compares, for every edition with a known host
// country, the host's medal count with its mean medal count over the other
// same-season editions it entered. A host with no away editions has an away
// average of 0.
func (d *Dataset) HomeAdvantageAnalysis() []HomeAdvantage {
	editions := query.GroupByFunc(d.records, editionOf, compareEditions)
	out := []HomeAdvantage{}
	for _, e := range editions {
		host, ok := hostNations[e.Key.City]
		if !ok {
			continue
		}
		home := query.Count(e.Rows, func(r Record) bool { return r.NOC == host && r.HasMedal() })

		var away []int
		for _, other := range editions {
			if other.Key == e.Key || other.Key.Season != e.Key.Season {
				continue
			}
			if !query.Any(other.Rows, func(r Record) bool { return r.NOC == host }) {
				continue
			}
			away = append(away, query.Count(other.Rows, func(r Record) bool { return r.NOC == host && r.HasMedal() }))
		}
		avg := query.Mean(away)
		boost := float64(home) - avg
		out = append(out, HomeAdvantage{
			Year:            e.Key.Year,
			Season:          e.Key.Season,
			City:            e.Key.City,
			HostCountry:     host,
			HomeMedals:      home,
			AvgAwayMedals:   query.Round2(avg),
			Boost:           query.Round2(boost),
			BoostPercentage: query.Round2(query.Ratio(boost, avg, 0) * 100),
		})
	}
	return out
}

// SeasonStats describes all Games of one season.
type SeasonStats struct {
	Season    string `json:"season"`
	Editions  int    `json:"editions"`
	Athletes  int    `json:"athletes"`
	Countries int    `json:"countries"`
	Sports    int    `json:"sports"`
	Events    int    `json:"events"`
	Medals    int    `json:"medals"`
}

// SummerVsWinter compares the two seasons.
func (d *Dataset) SummerVsWinter() []SeasonStats {
	season := func(r Record) (string, bool) { return r.Season, r.Season != "" }
	return query.Map(query.GroupBy(d.records, season), func(g query.Group[string, Record]) SeasonStats {
		return SeasonStats{
			Season:    g.Key,
			Editions:  query.CountDistinct(g.Rows, gamesOf),
			Athletes:  query.CountDistinct(g.Rows, athleteID),
			Countries: query.CountDistinct(g.Rows, nocOf),
			Sports:    query.CountDistinct(g.Rows, sportOf),
			Events:    query.CountDistinct(g.Rows, eventOf),
			Medals:    query.Count(g.Rows, Record.HasMedal),
		}
	})
}

// BoycottImpact compares a boycotted Summer Games with the previous one.
type BoycottImpact struct {
	Year              int `json:"year"`
	Countries         int `json:"countries"`
	Athletes          int `json:"athletes"`
	PreviousYear      int `json:"previous_year"`
	PreviousCountries int `json:"previous_countries"`
	PreviousAthletes  int `json:"previous_athletes"`
	CountryChange     int `json:"country_change"`
	AthleteChange     int `json:"athlete_change"`
}

// BoycottImpactAnalysis reports the 1976, 1980 and 1984 Summer Games against
// the Summer Games before each. Years absent from the data are skipped;
// a year with no earlier Summer Games reports zero previous values.
func (d *Dataset) BoycottImpactAnalysis() []BoycottImpact {
	summer := query.Filter(d.records, func(r Record) bool { return r.Season == Summer })
	byYear := query.GroupBy(summer, yearOf)
	index := query.Index(byYear)

	out := []BoycottImpact{}
	for _, year := range boycottYears {
		rows, ok := index[year]
		if !ok {
			continue
		}
		b := BoycottImpact{
			Year:      year,
			Countries: query.CountDistinct(rows, nocOf),
			Athletes:  query.CountDistinct(rows, athleteID),
		}
		for _, g := range byYear {
			if g.Key >= year {
				break
			}
			b.PreviousYear = g.Key
			b.PreviousCountries = query.CountDistinct(g.Rows, nocOf)
			b.PreviousAthletes = query.CountDistinct(g.Rows, athleteID)
		}
		b.CountryChange = b.Countries - b.PreviousCountries
		b.AthleteChange = b.Athletes - b.PreviousAthletes
		out = append(out, b)
	}
	return out
}
