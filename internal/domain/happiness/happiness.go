// Package happiness answers queries over the World Happiness Report panel:
// one row per country per year.
package happiness

import (
	"context"
	"fmt"
	"strings"

	"github.com/dara-lab/dara/internal/query"
	"github.com/dara-lab/dara/internal/table"
)

// Schema is the declared layout of world_happiness.csv.
func Schema() table.Schema {
	return table.Schema{
		Name: "world_happiness",
		Columns: []table.Column{
			{Name: "Country", Type: table.String},
			{Name: "Region", Type: table.String},
			{Name: "Year", Type: table.Int},
			{Name: "Rank", Type: table.Int},
			{Name: "Score", Type: table.Float},
			{Name: "GDP", Type: table.Float},
			{Name: "SocialSupport", Type: table.Float},
			{Name: "Health", Type: table.Float},
			{Name: "Freedom", Type: table.Float},
			{Name: "Generosity", Type: table.Float},
			{Name: "Corruption", Type: table.NullableFloat},
		},
	}
}

// Entry is one country's report for one year. Corruption is null for years
// that did not survey it.
type Entry struct {
	Country       string   `json:"Country"`
	Region        string   `json:"Region"`
	Year          int      `json:"Year"`
	Rank          int      `json:"Rank"`
	Score         float64  `json:"Score"`
	GDP           float64  `json:"GDP"`
	SocialSupport float64  `json:"SocialSupport"`
	Health        float64  `json:"Health"`
	Freedom       float64  `json:"Freedom"`
	Generosity    float64  `json:"Generosity"`
	Corruption    *float64 `json:"Corruption"`
}

// Factor is one explanatory column of the report.
type Factor struct {
	Name  string
	value func(Entry) (float64, bool)
}

// Factors lists the explanatory columns in file order.
func Factors() []Factor {
	return []Factor{
		{"GDP", func(e Entry) (float64, bool) { return e.GDP, true }},
		{"SocialSupport", func(e Entry) (float64, bool) { return e.SocialSupport, true }},
		{"Health", func(e Entry) (float64, bool) { return e.Health, true }},
		{"Freedom", func(e Entry) (float64, bool) { return e.Freedom, true }},
		{"Generosity", func(e Entry) (float64, bool) { return e.Generosity, true }},
		{"Corruption", func(e Entry) (float64, bool) {
			if e.Corruption == nil {
				return 0, false
			}
			return *e.Corruption, true
		}},
	}
}

// Dataset is the loaded report panel. It is immutable and safe for concurrent
// use.
type Dataset struct {
	entries []Entry
	latest  int
}

// New builds a dataset from entries. The slice is copied.
func New(entries []Entry) *Dataset {
	d := &Dataset{entries: append([]Entry(nil), entries...)}
	d.latest, _ = query.Max(query.Values(d.entries, yearOf))
	return d
}

// Load reads and decodes world_happiness.csv.
func Load(ctx context.Context, path string) (*Dataset, error) {
	t, err := table.Load(ctx, path, Schema())
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// FromTable decodes a loaded table into entries.
func FromTable(t *table.Table) (*Dataset, error) {
	b := table.Bind(t)
	country := b.String("Country")
	region := b.String("Region")
	year := b.Int("Year")
	rank := b.Int("Rank")
	score := b.Float("Score")
	gdp := b.Float("GDP")
	social := b.Float("SocialSupport")
	health := b.Float("Health")
	freedom := b.Float("Freedom")
	generosity := b.Float("Generosity")
	corruption := b.NullFloat("Corruption")
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("happiness: %w", err)
	}

	entries := make([]Entry, t.Len())
	for i := range entries {
		entries[i] = Entry{
			Country:       country.At(i),
			Region:        region.At(i),
			Year:          int(year.At(i)),
			Rank:          int(rank.At(i)),
			Score:         score.At(i),
			GDP:           gdp.At(i),
			SocialSupport: social.At(i),
			Health:        health.At(i),
			Freedom:       freedom.At(i),
			Generosity:    generosity.At(i),
		}
		if c := corruption.At(i); c.Valid {
			v := c.V
			entries[i].Corruption = &v
		}
	}
	return New(entries), nil
}

// Len returns the number of entries.
func (d *Dataset) Len() int { return len(d.entries) }

// LatestYear is the most recent report year, 0 for an empty panel.
func (d *Dataset) LatestYear() int { return d.latest }

func yearOf(e Entry) (int, bool)       { return e.Year, true }
func scoreOf(e Entry) float64          { return e.Score }
func regionOf(e Entry) (string, bool)  { return e.Region, e.Region != "" }
func countryOf(e Entry) (string, bool) { return e.Country, e.Country != "" }

func isCountry(name string) func(Entry) bool {
	return func(e Entry) bool { return strings.EqualFold(e.Country, name) }
}

func (d *Dataset) latestEntries() []Entry {
	return query.Filter(d.entries, func(e Entry) bool { return e.Year == d.latest })
}

// TopCountries returns the limit happiest countries of the latest year.
func (d *Dataset) TopCountries(limit int) []Entry {
	rows := d.latestEntries()
	query.Sort(rows, query.Desc(scoreOf))
	return query.Limit(rows, limit)
}

// FactorCorrelation is a factor's Pearson correlation with the score.
type FactorCorrelation struct {
	Factor      string  `json:"factor"`
	Correlation float64 `json:"correlation"`
}

// FactorImpact correlates each factor with the score over the rows where the
// factor is present, strongest absolute correlation first. Correlations are
// given to three decimals; a constant series correlates at 0.
func (d *Dataset) FactorImpact() []FactorCorrelation {
	type ranked struct {
		FactorCorrelation
		strength float64
	}
	out := make([]ranked, 0, len(Factors()))
	for _, f := range Factors() {
		var xs, ys []float64
		for _, e := range d.entries {
			if v, ok := f.value(e); ok {
				xs = append(xs, v)
				ys = append(ys, e.Score)
			}
		}
		r := query.Pearson(xs, ys)
		strength := r
		if strength < 0 {
			strength = -strength
		}
		out = append(out, ranked{
			FactorCorrelation: FactorCorrelation{Factor: f.Name, Correlation: query.Round(r, 3)},
			strength:          strength,
		})
	}
	query.Sort(out, query.Desc(func(r ranked) float64 { return r.strength }))
	return query.Map(out, func(r ranked) FactorCorrelation { return r.FactorCorrelation })
}

// CountryInfo returns every year reported for the named country, matched
// without regard to case, oldest first.
func (d *Dataset) CountryInfo(name string) ([]Entry, bool) {
	rows := query.Filter(d.entries, isCountry(name))
	query.Sort(rows, query.Asc(func(e Entry) int { return e.Year }))
	return rows, len(rows) > 0
}

func (d *Dataset) latestFor(name string) (Entry, bool) {
	rows := query.Filter(d.entries, isCountry(name))
	if len(rows) == 0 {
		return Entry{}, false
	}
	query.Sort(rows, query.Desc(func(e Entry) int { return e.Year }))
	return rows[0], true
}

// Comparison sets two countries' most recent reports side by side.
type Comparison struct {
	Country1        Entry   `json:"country1"`
	Country2        Entry   `json:"country2"`
	ScoreDifference float64 `json:"score_difference"`
}

// CompareCountries compares the latest report of each country. The score
// difference is the first minus the second. found is false unless both
// countries are present.
func (d *Dataset) CompareCountries(c1, c2 string) (Comparison, bool) {
	a, okA := d.latestFor(c1)
	b, okB := d.latestFor(c2)
	if !okA || !okB {
		return Comparison{}, false
	}
	return Comparison{
		Country1:        a,
		Country2:        b,
		ScoreDifference: query.Round2(a.Score - b.Score),
	}, true
}

// CountryScore names a country and its score.
type CountryScore struct {
	Country string  `json:"country"`
	Score   float64 `json:"score"`
}

// RegionGap is the spread between a region's happiest and unhappiest
// countries.
type RegionGap struct {
	Region     string       `json:"region"`
	Happiest   CountryScore `json:"happiest"`
	Unhappiest CountryScore `json:"unhappiest"`
	Gap        float64      `json:"gap"`
}

// HappinessGap reports, per region in the latest year, the happiest and
// unhappiest country. A non-empty region restricts the result to that
// region, matched without regard to case.
func (d *Dataset) HappinessGap(region string) []RegionGap {
	rows := d.latestEntries()
	if region != "" {
		rows = query.Filter(rows, func(e Entry) bool { return strings.EqualFold(e.Region, region) })
	}
	return query.Map(query.GroupBy(rows, regionOf), func(g query.Group[string, Entry]) RegionGap {
		byScore := append([]Entry(nil), g.Rows...)
		query.Sort(byScore, query.Desc(scoreOf))
		hi, lo := byScore[0], byScore[len(byScore)-1]
		return RegionGap{
			Region:     g.Key,
			Happiest:   CountryScore{Country: hi.Country, Score: query.Round2(hi.Score)},
			Unhappiest: CountryScore{Country: lo.Country, Score: query.Round2(lo.Score)},
			Gap:        query.Round2(hi.Score - lo.Score),
		}
	})
}

// RankPoint is a country's standing in one year.
type RankPoint struct {
	Year  int     `json:"year"`
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}

// RankTrend is a country's standing over time.
type RankTrend struct {
	Country string      `json:"country"`
	Trend   []RankPoint `json:"trend"`
}

// CountryRankTrend returns each country's rank by year. A non-empty country
// restricts the result to that country.
func (d *Dataset) CountryRankTrend(country string) []RankTrend {
	rows := d.entries
	if country != "" {
		rows = query.Filter(rows, isCountry(country))
	}
	return query.Map(query.GroupBy(rows, countryOf), func(g query.Group[string, Entry]) RankTrend {
		points := query.Map(g.Rows, func(e Entry) RankPoint {
			return RankPoint{Year: e.Year, Rank: e.Rank, Score: query.Round2(e.Score)}
		})
		query.Sort(points, query.Asc(func(p RankPoint) int { return p.Year }))
		return RankTrend{Country: g.Key, Trend: points}
	})
}

// FactorMeans holds the average of every factor over a set of rows.
type FactorMeans struct {
	GDP           float64 `json:"GDP"`
	SocialSupport float64 `json:"SocialSupport"`
	Health        float64 `json:"Health"`
	Freedom       float64 `json:"Freedom"`
	Generosity    float64 `json:"Generosity"`
	Corruption    float64 `json:"Corruption"`
}

func factorMeans(rows []Entry) FactorMeans {
	mean := func(f Factor) float64 { return query.Round2(query.Mean(query.Values(rows, f.value))) }
	fs := Factors()
	return FactorMeans{
		GDP:           mean(fs[0]),
		SocialSupport: mean(fs[1]),
		Health:        mean(fs[2]),
		Freedom:       mean(fs[3]),
		Generosity:    mean(fs[4]),
		Corruption:    mean(fs[5]),
	}
}

// RegionFactors are one region's factor averages.
type RegionFactors struct {
	Region string `json:"region"`
	FactorMeans
}

// FactorAverages are factor means per region and over the whole panel.
type FactorAverages struct {
	Regions []RegionFactors `json:"regions"`
	Global  FactorMeans     `json:"global"`
}

// FactorAverages averages every factor per region and globally, over all
// years. Missing corruption readings are skipped.
func (d *Dataset) FactorAverages() FactorAverages {
	return FactorAverages{
		Regions: query.Map(query.GroupBy(d.entries, regionOf), func(g query.Group[string, Entry]) RegionFactors {
			return RegionFactors{Region: g.Key, FactorMeans: factorMeans(g.Rows)}
		}),
		Global: factorMeans(d.entries),
	}
}
