package olympics

import (
	"strconv"

	"github.com/dara-lab/dara/internal/query"
)

const (
	dominantN        = 10
	searchTopNations = 5
)

// PhysicalStats summarises athlete build in one sport.
type PhysicalStats struct {
	Sport     string  `json:"sport"`
	Athletes  int     `json:"athletes"`
	AvgHeight float64 `json:"avg_height"`
	MinHeight float64 `json:"min_height"`
	MaxHeight float64 `json:"max_height"`
	AvgWeight float64 `json:"avg_weight"`
	MinWeight float64 `json:"min_weight"`
	MaxWeight float64 `json:"max_weight"`
	AvgAge    float64 `json:"avg_age"`
}

// PhysicalStatsBySport returns per-sport height, weight and age statistics.
// A non-empty sport restricts the result to that sport (case-insensitive).
func (d *Dataset) PhysicalStatsBySport(sport string) []PhysicalStats {
	rows := d.records
	if sport != "" {
		rows = query.Filter(rows, func(r Record) bool { return sameFold(r.Sport, sport) })
	}
	return query.Map(query.GroupBy(rows, sportOf), func(g query.Group[string, Record]) PhysicalStats {
		heights := query.Values(g.Rows, heightOf)
		weights := query.Values(g.Rows, weightOf)
		minH, _ := query.Min(heights)
		maxH, _ := query.Max(heights)
		minW, _ := query.Min(weights)
		maxW, _ := query.Max(weights)
		return PhysicalStats{
			Sport:     g.Key,
			Athletes:  query.CountDistinct(g.Rows, athleteID),
			AvgHeight: query.Round2(query.Mean(heights)),
			MinHeight: minH,
			MaxHeight: maxH,
			AvgWeight: query.Round2(query.Mean(weights)),
			MinWeight: minW,
			MaxWeight: maxW,
			AvgAge:    query.Round2(query.Mean(query.Values(g.Rows, ageOf))),
		}
	})
}

// SportEvolution is a sport's presence across Games.
type SportEvolution struct {
	Sport     string `json:"sport"`
	FirstYear int    `json:"first_year"`
	LastYear  int    `json:"last_year"`
	Editions  int    `json:"editions"`
	Events    int    `json:"events"`
	Athletes  int    `json:"athletes"`
}

func sportEvolution(g query.Group[string, Record]) SportEvolution {
	years := query.Values(g.Rows, yearOf)
	first, _ := query.Min(years)
	last, _ := query.Max(years)
	return SportEvolution{
		Sport:     g.Key,
		FirstYear: first,
		LastYear:  last,
		Editions:  query.CountDistinct(g.Rows, gamesOf),
		Events:    query.CountDistinct(g.Rows, eventOf),
		Athletes:  query.CountDistinct(g.Rows, athleteID),
	}
}

// SportEvolutions lists every sport by year of introduction.
func (d *Dataset) SportEvolutions() []SportEvolution {
	out := query.Map(query.GroupBy(d.records, sportOf), sportEvolution)
	query.Sort(out, query.Asc(func(s SportEvolution) int { return s.FirstYear }))
	return out
}

// ExtinctSport is a sport no longer held.
type ExtinctSport struct {
	Sport     string `json:"sport"`
	Season    string `json:"season"`
	FirstYear int    `json:"first_year"`
	LastYear  int    `json:"last_year"`
	Editions  int    `json:"editions"`
}

// ExtinctSports lists sports whose last appearance predates the latest Games
// of the season they were last held in.
func (d *Dataset) ExtinctSports() []ExtinctSport {
	latest := map[string]int{}
	for _, r := range d.records {
		if r.Year > latest[r.Season] {
			latest[r.Season] = r.Year
		}
	}
	out := []ExtinctSport{}
	for _, g := range query.GroupBy(d.records, sportOf) {
		evo := sportEvolution(g)
		season := ""
		for _, r := range g.Rows {
			if r.Year == evo.LastYear {
				season = r.Season
				break
			}
		}
		if evo.LastYear >= latest[season] {
			continue
		}
		out = append(out, ExtinctSport{
			Sport: g.Key, Season: season,
			FirstYear: evo.FirstYear, LastYear: evo.LastYear, Editions: evo.Editions,
		})
	}
	query.Sort(out, query.Asc(func(e ExtinctSport) int { return e.LastYear }))
	return out
}

// Monopoly is the share of a sport's medals held by its top country.
type Monopoly struct {
	Sport           string  `json:"sport"`
	DominantCountry string  `json:"dominant_country"`
	Medals          int     `json:"medals"`
	TotalMedals     int     `json:"total_medals"`
	SharePercentage float64 `json:"share_percentage"`
}

// SportMonopolies ranks sports by how concentrated their medals are in one
// country.
func (d *Dataset) SportMonopolies() []Monopoly {
	out := query.Map(query.GroupBy(d.medals, sportOf), func(g query.Group[string, Record]) Monopoly {
		top := query.ValueCounts(query.Map(g.Rows, func(r Record) string { return r.NOC }))[0]
		return Monopoly{
			Sport:           g.Key,
			DominantCountry: top.Key,
			Medals:          top.Count,
			TotalMedals:     len(g.Rows),
			SharePercentage: query.Round2(query.Percent(top.Count, len(g.Rows))),
		}
	})
	query.Sort(out, query.Desc(func(m Monopoly) float64 { return m.SharePercentage }))
	return out
}

// SportDominance is the medal table of one sport.
type SportDominance struct {
	Sport     string          `json:"sport"`
	Countries []CountryMedals `json:"countries"`
}

// DominantCountries returns the ten most successful countries in sport.
func (d *Dataset) DominantCountries(sport string) SportDominance {
	rows := query.Filter(d.medals, func(r Record) bool { return sameFold(r.Sport, sport) })
	tallies := countryTallies(rows)
	query.Sort(tallies,
		query.Desc(func(c CountryMedals) int { return c.Total }),
		query.Desc(func(c CountryMedals) int { return c.Gold }),
	)
	return SportDominance{Sport: sport, Countries: query.Limit(tallies, dominantN)}
}

// SportParticipation counts who takes part in a sport.
type SportParticipation struct {
	Sport     string `json:"sport"`
	Athletes  int    `json:"athletes"`
	Entries   int    `json:"entries"`
	Countries int    `json:"countries"`
}

// SportParticipations ranks sports by distinct athletes.
func (d *Dataset) SportParticipations() []SportParticipation {
	out := query.Map(query.GroupBy(d.records, sportOf), func(g query.Group[string, Record]) SportParticipation {
		return SportParticipation{
			Sport:     g.Key,
			Athletes:  query.CountDistinct(g.Rows, athleteID),
			Entries:   len(g.Rows),
			Countries: query.CountDistinct(g.Rows, nocOf),
		}
	})
	query.Sort(out, query.Desc(func(s SportParticipation) int { return s.Athletes }))
	return out
}

// Dropout is the share of a sport's athletes who never medalled.
type Dropout struct {
	Sport         string  `json:"sport"`
	TotalAthletes int     `json:"total_athletes"`
	Medalists     int     `json:"medalists"`
	NonMedalists  int     `json:"non_medalists"`
	FailureRate   float64 `json:"failure_rate"`
}

// DropoutRateBySport ranks sports with at least one medallist by the
// percentage of athletes who never won a medal in them.
func (d *Dataset) DropoutRateBySport() []Dropout {
	type ranked struct {
		Dropout
		raw float64
	}
	var out []ranked
	for _, g := range query.GroupBy(d.records, sportOf) {
		total := query.CountDistinct(g.Rows, athleteID)
		medalists := query.CountDistinct(query.Filter(g.Rows, Record.HasMedal), athleteID)
		if medalists == 0 {
			continue
		}
		rate := query.Percent(total-medalists, total)
		out = append(out, ranked{
			Dropout: Dropout{
				Sport: g.Key, TotalAthletes: total, Medalists: medalists,
				NonMedalists: total - medalists, FailureRate: query.Round2(rate),
			},
			raw: rate,
		})
	}
	query.Sort(out, query.Desc(func(r ranked) float64 { return r.raw }))
	return query.Map(out, func(r ranked) Dropout { return r.Dropout })
}

// AgeSweetSpot is the medal-winning age profile of a sport.
type AgeSweetSpot struct {
	Sport        string  `json:"sport"`
	MeanAge      float64 `json:"mean_age"`
	MedianAge    float64 `json:"median_age"`
	StdDeviation float64 `json:"std_deviation"`
	AgeRange     string  `json:"age_range"`
}

// AgeSweetSpotBySport returns mean, median and spread of medallist ages per
// sport. AgeRange is mean minus and plus one standard deviation.
func (d *Dataset) AgeSweetSpotBySport() []AgeSweetSpot {
	rows := query.Filter(d.medals, func(r Record) bool { return r.Age.Valid })
	return query.Map(query.GroupBy(rows, sportOf), func(g query.Group[string, Record]) AgeSweetSpot {
		ages := query.Values(g.Rows, ageOf)
		mean, std := query.Mean(ages), query.Std(ages)
		return AgeSweetSpot{
			Sport:        g.Key,
			MeanAge:      query.Round2(mean),
			MedianAge:    query.Round2(query.Median(ages)),
			StdDeviation: query.Round2(std),
			AgeRange:     oneDecimal(mean-std) + " - " + oneDecimal(mean+std),
		}
	})
}

func oneDecimal(x float64) string {
	return strconv.FormatFloat(query.Round(x, 1), 'f', 1, 64)
}

// BMIStats summarises body mass index in one sport.
type BMIStats struct {
	Sport    string  `json:"sport"`
	Athletes int     `json:"athletes"`
	MeanBMI  float64 `json:"mean_bmi"`
	MinBMI   float64 `json:"min_bmi"`
	MaxBMI   float64 `json:"max_bmi"`
	StdBMI   float64 `json:"std_bmi"`
}

func bmiOf(r Record) (float64, bool) {
	if !r.Height.Valid || !r.Weight.Valid || r.Height.V <= 0 {
		return 0, false
	}
	m := r.Height.V / 100
	return r.Weight.V / (m * m), true
}

// BMIAnalysisBySport ranks sports by mean BMI of entries with both height
// and weight recorded.
func (d *Dataset) BMIAnalysisBySport() []BMIStats {
	rows := query.Filter(d.records, func(r Record) bool {
		_, ok := bmiOf(r)
		return ok
	})
	type ranked struct {
		BMIStats
		raw float64
	}
	out := query.Map(query.GroupBy(rows, sportOf), func(g query.Group[string, Record]) ranked {
		bmi := query.Values(g.Rows, bmiOf)
		lo, _ := query.Min(bmi)
		hi, _ := query.Max(bmi)
		mean := query.Mean(bmi)
		return ranked{
			BMIStats: BMIStats{
				Sport:    g.Key,
				Athletes: query.CountDistinct(g.Rows, athleteID),
				MeanBMI:  query.Round2(mean),
				MinBMI:   query.Round2(lo),
				MaxBMI:   query.Round2(hi),
				StdBMI:   query.Round2(query.Std(bmi)),
			},
			raw: mean,
		}
	})
	query.Sort(out, query.Desc(func(r ranked) float64 { return r.raw }))
	return query.Map(out, func(r ranked) BMIStats { return r.BMIStats })
}

// YearPhysique is the average build of a sport's entrants in one year.
type YearPhysique struct {
	Year      int     `json:"year"`
	AvgHeight float64 `json:"avg_height"`
	AvgWeight float64 `json:"avg_weight"`
	AvgAge    float64 `json:"avg_age"`
}

// PhysicalChanges tracks a sport's average build over time.
type PhysicalChanges struct {
	Sport  string         `json:"sport"`
	ByYear []YearPhysique `json:"by_year"`
}

// PhysicalChangesOverTime returns per-year averages for sport. Years with no
// recorded value for a measure report 0 for it.
func (d *Dataset) PhysicalChangesOverTime(sport string) PhysicalChanges {
	rows := query.Filter(d.records, func(r Record) bool { return sameFold(r.Sport, sport) })
	byYear := query.Map(query.GroupBy(rows, yearOf), func(g query.Group[int, Record]) YearPhysique {
		return YearPhysique{
			Year:      g.Key,
			AvgHeight: query.Round2(query.Mean(query.Values(g.Rows, heightOf))),
			AvgWeight: query.Round2(query.Mean(query.Values(g.Rows, weightOf))),
			AvgAge:    query.Round2(query.Mean(query.Values(g.Rows, ageOf))),
		}
	})
	return PhysicalChanges{Sport: sport, ByYear: byYear}
}

// NationCount is a country with an entry count.
type NationCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// SportSearch is the result of a sport search.
type SportSearch struct {
	Query          string        `json:"query"`
	MatchingSports []string      `json:"matching_sports"`
	TotalAthletes  int           `json:"total_athletes"`
	TotalEvents    int           `json:"total_events"`
	YearsActive    []int         `json:"years_active"`
	TopCountries   []NationCount `json:"top_countries"`
}

// SearchSport matches sport case-insensitively anywhere in sport names.
// found is false when nothing matches.
func (d *Dataset) SearchSport(sport string) (res SportSearch, found bool) {
	rows := query.Filter(d.records, func(r Record) bool { return query.ContainsFold(r.Sport, sport) })
	if len(rows) == 0 {
		return SportSearch{Query: sport}, false
	}
	counts := query.ValueCounts(query.Map(rows, func(r Record) string { return r.NOC }))
	return SportSearch{
		Query:          sport,
		MatchingSports: query.Unique(rows, sportOf),
		TotalAthletes:  query.CountDistinct(rows, athleteID),
		TotalEvents:    query.CountDistinct(rows, eventOf),
		YearsActive:    query.Distinct(rows, yearOf),
		TopCountries: query.Map(query.Limit(counts, searchTopNations), func(c query.Counted[string]) NationCount {
			return NationCount{Country: c.Key, Count: c.Count}
		}),
	}, true
}
