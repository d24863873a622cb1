// Package energy answers queries over the global energy consumption panel.
// The panel may hold several readings for the same country and year; per-year
// figures are means of those readings.
package energy

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dara-lab/dara/internal/query"
	"github.com/dara-lab/dara/internal/table"
)

// Column names of global_energy.csv.
const (
	colCountry     = "Country"
	colYear        = "Year"
	colConsumption = "Total Energy Consumption (TWh)"
	colPerCapita   = "Per Capita Energy Use (kWh)"
	colRenewable   = "Renewable Energy Share (%)"
	colFossil      = "Fossil Fuel Dependency (%)"
	colIndustrial  = "Industrial Energy Consumption (%)"
	colHousehold   = "Household Energy Consumption (%)"
	colCarbon      = "Carbon Emissions (Million Tons)"
	colPrice       = "Energy Price Index (USD/kWh)"
)

// Schema is the declared layout of global_energy.csv.
func Schema() table.Schema {
	return table.Schema{
		Name: "global_energy",
		Columns: []table.Column{
			{Name: colCountry, Type: table.String},
			{Name: colYear, Type: table.Int},
			{Name: colConsumption, Type: table.Float},
			{Name: colPerCapita, Type: table.Float},
			{Name: colRenewable, Type: table.Float},
			{Name: colFossil, Type: table.Float},
			{Name: colIndustrial, Type: table.Float},
			{Name: colHousehold, Type: table.Float},
			{Name: colCarbon, Type: table.Float},
			{Name: colPrice, Type: table.Float},
		},
	}
}

// Reading is one country-year observation.
type Reading struct {
	Country          string
	Year             int
	TotalConsumption float64
	PerCapita        float64
	RenewableShare   float64
	FossilDependency float64
	IndustrialUse    float64
	HouseholdUse     float64
	CarbonEmissions  float64
	PriceIndex       float64
}

// Dataset is the loaded panel. It is immutable and safe for concurrent use.
type Dataset struct {
	readings []Reading
}

// New builds a dataset from readings. The slice is copied.
func New(readings []Reading) *Dataset {
	return &Dataset{readings: append([]Reading(nil), readings...)}
}

// Load reads and decodes global_energy.csv.
func Load(ctx context.Context, path string) (*Dataset, error) {
	t, err := table.Load(ctx, path, Schema())
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// FromTable decodes a loaded table into readings.
func FromTable(t *table.Table) (*Dataset, error) {
	b := table.Bind(t)
	country := b.String(colCountry)
	year := b.Int(colYear)
	consumption := b.Float(colConsumption)
	perCapita := b.Float(colPerCapita)
	renewable := b.Float(colRenewable)
	fossil := b.Float(colFossil)
	industrial := b.Float(colIndustrial)
	household := b.Float(colHousehold)
	carbon := b.Float(colCarbon)
	price := b.Float(colPrice)
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("energy: %w", err)
	}

	readings := make([]Reading, t.Len())
	for i := range readings {
		readings[i] = Reading{
			Country:          country.At(i),
			Year:             int(year.At(i)),
			TotalConsumption: consumption.At(i),
			PerCapita:        perCapita.At(i),
			RenewableShare:   renewable.At(i),
			FossilDependency: fossil.At(i),
			IndustrialUse:    industrial.At(i),
			HouseholdUse:     household.At(i),
			CarbonEmissions:  carbon.At(i),
			PriceIndex:       price.At(i),
		}
	}
	return &Dataset{readings: readings}, nil
}

// Len returns the number of readings.
func (d *Dataset) Len() int { return len(d.readings) }

func countryOf(r Reading) (string, bool) { return r.Country, r.Country != "" }
func yearOf(r Reading) (int, bool)       { return r.Year, true }

func isCountry(name string) func(Reading) bool {
	return func(r Reading) bool { return strings.EqualFold(r.Country, name) }
}

func field(f func(Reading) float64) func(Reading) (float64, bool) {
	return func(r Reading) (float64, bool) { return f(r), true }
}

func meanOf(rows []Reading, f func(Reading) float64) float64 {
	return query.Mean(query.Values(rows, field(f)))
}

func sumOf(rows []Reading, f func(Reading) float64) float64 {
	return query.Sum(query.Values(rows, field(f)))
}

func consumptionOf(r Reading) float64 { return r.TotalConsumption }
func renewableOf(r Reading) float64   { return r.RenewableShare }
func fossilOf(r Reading) float64      { return r.FossilDependency }
func industrialOf(r Reading) float64  { return r.IndustrialUse }
func householdOf(r Reading) float64   { return r.HouseholdUse }
func carbonOf(r Reading) float64      { return r.CarbonEmissions }
func priceOf(r Reading) float64       { return r.PriceIndex }

// GlobalSummary is the panel at a glance.
type GlobalSummary struct {
	Countries             int     `json:"countries"`
	Years                 string  `json:"years"`
	TotalConsumptionTWh   float64 `json:"total_consumption_twh"`
	TotalCarbonMillionTon float64 `json:"total_carbon_million_tons"`
	AvgRenewableShare     float64 `json:"avg_renewable_share"`
	AvgFossilDependency   float64 `json:"avg_fossil_dependency"`
	AvgPriceIndex         float64 `json:"avg_price_index"`
}

// GlobalSummary totals consumption and emissions and averages the shares and
// price over every reading.
func (d *Dataset) GlobalSummary() GlobalSummary {
	years := query.Values(d.readings, yearOf)
	lo, _ := query.Min(years)
	hi, _ := query.Max(years)
	return GlobalSummary{
		Countries:             query.CountDistinct(d.readings, countryOf),
		Years:                 strconv.Itoa(lo) + " - " + strconv.Itoa(hi),
		TotalConsumptionTWh:   query.Round2(sumOf(d.readings, consumptionOf)),
		TotalCarbonMillionTon: query.Round2(sumOf(d.readings, carbonOf)),
		AvgRenewableShare:     query.Round2(meanOf(d.readings, renewableOf)),
		AvgFossilDependency:   query.Round2(meanOf(d.readings, fossilOf)),
		AvgPriceIndex:         query.Round2(meanOf(d.readings, priceOf)),
	}
}

// RenewableLeader is a country's mean renewable share.
type RenewableLeader struct {
	Country           string  `json:"country"`
	AvgRenewableShare float64 `json:"avg_renewable_share"`
}

// RenewableLeaders ranks countries by mean renewable share over all years.
func (d *Dataset) RenewableLeaders(limit int) []RenewableLeader {
	type ranked struct {
		RenewableLeader
		raw float64
	}
	out := query.Map(query.GroupBy(d.readings, countryOf), func(g query.Group[string, Reading]) ranked {
		m := meanOf(g.Rows, renewableOf)
		return ranked{RenewableLeader{Country: g.Key, AvgRenewableShare: query.Round2(m)}, m}
	})
	query.Sort(out, query.Desc(func(r ranked) float64 { return r.raw }))
	return query.Map(query.Limit(out, limit), func(r ranked) RenewableLeader { return r.RenewableLeader })
}

// CarbonIntensity is a country's emissions per unit of energy consumed.
type CarbonIntensity struct {
	Country      string  `json:"country"`
	CarbonPerTWh float64 `json:"carbon_per_twh"`
}

// CleanestCountries ranks countries by total emissions over total
// consumption, lowest first. A country that consumed nothing scores 0.
func (d *Dataset) CleanestCountries(limit int) []CarbonIntensity {
	type ranked struct {
		CarbonIntensity
		raw float64
	}
	out := query.Map(query.GroupBy(d.readings, countryOf), func(g query.Group[string, Reading]) ranked {
		x := query.Ratio(sumOf(g.Rows, carbonOf), sumOf(g.Rows, consumptionOf), 0)
		return ranked{CarbonIntensity{Country: g.Key, CarbonPerTWh: query.Round(x, 4)}, x}
	})
	query.Sort(out, query.Asc(func(r ranked) float64 { return r.raw }))
	return query.Map(query.Limit(out, limit), func(r ranked) CarbonIntensity { return r.CarbonIntensity })
}

// YearPrice holds both countries' mean price index for one year. A country
// without readings that year is null.
type YearPrice struct {
	Year     int      `json:"year"`
	Country1 *float64 `json:"country1"`
	Country2 *float64 `json:"country2"`
}

// PriceComparison sets two countries' price histories side by side.
type PriceComparison struct {
	Country1    string      `json:"country1"`
	Country2    string      `json:"country2"`
	Country1Avg float64     `json:"country1_avg_price"`
	Country2Avg float64     `json:"country2_avg_price"`
	ByYear      []YearPrice `json:"by_year"`
}

// ComparePrice compares the price index of two countries, matched without
// regard to case, over the union of their years. found is false when neither
// country has readings.
func (d *Dataset) ComparePrice(c1, c2 string) (PriceComparison, bool) {
	a := query.Filter(d.readings, isCountry(c1))
	b := query.Filter(d.readings, isCountry(c2))
	if len(a) == 0 && len(b) == 0 {
		return PriceComparison{}, false
	}

	perYear := func(rows []Reading) map[int]float64 {
		m := make(map[int]float64)
		for _, g := range query.GroupBy(rows, yearOf) {
			m[g.Key] = query.Round2(meanOf(g.Rows, priceOf))
		}
		return m
	}
	pa, pb := perYear(a), perYear(b)
	lookup := func(m map[int]float64, year int) *float64 {
		if v, ok := m[year]; ok {
			return &v
		}
		return nil
	}

	both := append(append([]Reading(nil), a...), b...)
	return PriceComparison{
		Country1:    c1,
		Country2:    c2,
		Country1Avg: query.Round2(meanOf(a, priceOf)),
		Country2Avg: query.Round2(meanOf(b, priceOf)),
		ByYear: query.Map(query.Distinct(both, yearOf), func(y int) YearPrice {
			return YearPrice{Year: y, Country1: lookup(pa, y), Country2: lookup(pb, y)}
		}),
	}, true
}

// MixPoint is a country's mean energy mix in one year.
type MixPoint struct {
	Year       int     `json:"year"`
	Renewable  float64 `json:"renewable"`
	Fossil     float64 `json:"fossil"`
	Industrial float64 `json:"industrial"`
	Household  float64 `json:"household"`
}

// EnergyMix is a country's energy mix over time.
type EnergyMix struct {
	Country string     `json:"country"`
	ByYear  []MixPoint `json:"by_year"`
}

// EnergyMix returns each country's yearly energy mix, oldest first. A
// non-empty country restricts the result to that country.
func (d *Dataset) EnergyMix(country string) []EnergyMix {
	rows := d.readings
	if country != "" {
		rows = query.Filter(rows, isCountry(country))
	}
	return query.Map(query.GroupBy(rows, countryOf), func(g query.Group[string, Reading]) EnergyMix {
		return EnergyMix{
			Country: g.Key,
			ByYear: query.Map(query.GroupBy(g.Rows, yearOf), func(y query.Group[int, Reading]) MixPoint {
				return MixPoint{
					Year:       y.Key,
					Renewable:  query.Round2(meanOf(y.Rows, renewableOf)),
					Fossil:     query.Round2(meanOf(y.Rows, fossilOf)),
					Industrial: query.Round2(meanOf(y.Rows, industrialOf)),
					Household:  query.Round2(meanOf(y.Rows, householdOf)),
				}
			}),
		}
	})
}

// FactorStats describes the distribution of one numeric column.
type FactorStats struct {
	Factor string  `json:"factor"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Std    float64 `json:"std"`
}

type factor struct {
	name  string
	value func(Reading) float64
}

func factors() []factor {
	return []factor{
		{colConsumption, consumptionOf},
		{colPerCapita, func(r Reading) float64 { return r.PerCapita }},
		{colRenewable, renewableOf},
		{colFossil, fossilOf},
		{colIndustrial, industrialOf},
		{colHousehold, householdOf},
		{colCarbon, carbonOf},
		{colPrice, priceOf},
	}
}

// FactorSummary describes every numeric column in file order.
func (d *Dataset) FactorSummary() []FactorStats {
	return query.Map(factors(), func(x factor) FactorStats {
		xs := query.Values(d.readings, field(x.value))
		lo, _ := query.Min(xs)
		hi, _ := query.Max(xs)
		return FactorStats{
			Factor: x.name,
			Mean:   query.Round2(query.Mean(xs)),
			Min:    query.Round2(lo),
			Max:    query.Round2(hi),
			Std:    query.Round2(query.Std(xs)),
		}
	})
}
