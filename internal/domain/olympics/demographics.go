package olympics

import (
	"math"

	"github.com/dara-lab/dara/internal/query"
)

const (
	genderParityN = 30
	parityCentre  = 50
	parityMax     = 100
)

// Sex values.
const (
	Male   = "M"
	Female = "F"
)

// GenderYear is the gender split of one Games year.
type GenderYear struct {
	Year             int     `json:"year"`
	Male             int     `json:"male"`
	Female           int     `json:"female"`
	FemalePercentage float64 `json:"female_percentage"`
}

// GenderParticipationTrend counts distinct male and female athletes per year.
func (d *Dataset) GenderParticipationTrend() []GenderYear {
	return query.Map(query.GroupBy(d.records, yearOf), func(g query.Group[int, Record]) GenderYear {
		male := query.CountDistinct(query.Filter(g.Rows, isSex(Male)), athleteID)
		female := query.CountDistinct(query.Filter(g.Rows, isSex(Female)), athleteID)
		return GenderYear{
			Year:             g.Key,
			Male:             male,
			Female:           female,
			FemalePercentage: query.Round2(query.Percent(female, male+female)),
		}
	})
}

func isSex(s string) func(Record) bool {
	return func(r Record) bool { return r.Sex == s }
}

// ParityScore measures distance from an even split: 100 at 50% female, 50 at
// an all-male or all-female group.
func ParityScore(femalePercentage float64) float64 {
	return parityMax - math.Abs(parityCentre-femalePercentage)
}

// GenderParity is the gender balance of a country's entries.
type GenderParity struct {
	Country          string  `json:"country"`
	Male             int     `json:"male"`
	Female           int     `json:"female"`
	Total            int     `json:"total"`
	FemalePercentage float64 `json:"female_percentage"`
	ParityScore      float64 `json:"parity_score"`
}

// GenderParityByCountry ranks countries by parity score over entry rows,
// restricted to year when year is non-zero.
func (d *Dataset) GenderParityByCountry(year int) []GenderParity {
	rows := d.records
	if year != 0 {
		rows = query.Filter(rows, func(r Record) bool { return r.Year == year })
	}
	type ranked struct {
		GenderParity
		raw float64
	}
	out := query.Map(query.GroupBy(rows, nocOf), func(g query.Group[string, Record]) ranked {
		male := query.Count(g.Rows, isSex(Male))
		female := query.Count(g.Rows, isSex(Female))
		pct := query.Percent(female, len(g.Rows))
		score := ParityScore(pct)
		return ranked{
			GenderParity: GenderParity{
				Country:          g.Key,
				Male:             male,
				Female:           female,
				Total:            len(g.Rows),
				FemalePercentage: query.Round2(pct),
				ParityScore:      query.Round2(score),
			},
			raw: score,
		}
	})
	query.Sort(out, query.Desc(func(r ranked) float64 { return r.raw }))
	return query.Map(query.Limit(out, genderParityN), func(r ranked) GenderParity { return r.GenderParity })
}

// SportGender is the gender balance of a sport's entries.
type SportGender struct {
	Sport            string  `json:"sport"`
	Male             int     `json:"male"`
	Female           int     `json:"female"`
	Total            int     `json:"total"`
	FemalePercentage float64 `json:"female_percentage"`
}

// GenderParityBySport lists sports from the least to the most female.
func (d *Dataset) GenderParityBySport() []SportGender {
	out := query.Map(query.GroupBy(d.records, sportOf), func(g query.Group[string, Record]) SportGender {
		female := query.Count(g.Rows, isSex(Female))
		return SportGender{
			Sport:            g.Key,
			Male:             query.Count(g.Rows, isSex(Male)),
			Female:           female,
			Total:            len(g.Rows),
			FemalePercentage: query.Round2(query.Percent(female, len(g.Rows))),
		}
	})
	query.Sort(out, query.Asc(func(s SportGender) float64 { return s.FemalePercentage }))
	return out
}
