package happiness_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/dara-lab/dara/internal/domain/happiness"
	"github.com/dara-lab/dara/internal/table"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(v float64) *float64 { return &v }

func entry(country, region string, year, rank int, score float64, corruption *float64) happiness.Entry {
	return happiness.Entry{
		Country: country, Region: region, Year: year, Rank: rank, Score: score,
		GDP:           score / 5,
		SocialSupport: math.Mod(score*7, 1.3),
		Health:        10 - score,
		Freedom:       float64(rank%7) / 10,
		Generosity:    0.5,
		Corruption:    corruption,
	}
}

func newPanel() *happiness.Dataset {
	return happiness.New([]happiness.Entry{
		entry("Finland", "Western Europe", 2018, 1, 7.6, nil),
		entry("Afghanistan", "South Asia", 2018, 145, 3.6, nil),
		entry("Finland", "Western Europe", 2019, 1, 7.8, ptr(0.4)),
		entry("Denmark", "Western Europe", 2019, 2, 7.6, ptr(0.4)),
		entry("Greece", "Western Europe", 2019, 40, 5.3, ptr(0.1)),
		entry("Afghanistan", "South Asia", 2019, 150, 3.2, ptr(0.0)),
		entry("India", "South Asia", 2019, 140, 4.0, ptr(0.1)),
	})
}

func TestTopCountries(t *testing.T) {
	Convey("Given a two-year panel", t, func() {
		d := newPanel()
		So(d.LatestYear(), ShouldEqual, 2019)

		Convey("When the top countries are requested", func() {
			got := d.TopCountries(2)

			Convey("Then only the latest year is ranked by score", func() {
				So(len(got), ShouldEqual, 2)
				So(got[0].Country, ShouldEqual, "Finland")
				So(got[0].Year, ShouldEqual, 2019)
				So(got[1].Country, ShouldEqual, "Denmark")
			})
		})

		Convey("A zero limit yields an empty list", func() {
			So(d.TopCountries(0), ShouldBeEmpty)
		})
	})
}

func TestFactorImpact(t *testing.T) {
	Convey("Given factors with known relationships to the score", t, func() {
		got := newPanel().FactorImpact()
		byName := map[string]float64{}
		for _, f := range got {
			byName[f.Factor] = f.Correlation
		}

		Convey("Then correlations are computed per factor", func() {
			So(len(got), ShouldEqual, 6)
			So(byName["GDP"], ShouldEqual, 1.0)
			So(byName["Health"], ShouldEqual, -1.0)
			So(byName["Generosity"], ShouldEqual, 0.0)
		})

		Convey("And they are ordered by absolute strength", func() {
			for i := 1; i < len(got); i++ {
				So(math.Abs(got[i-1].Correlation), ShouldBeGreaterThanOrEqualTo, math.Abs(got[i].Correlation))
			}
			So(got[len(got)-1].Factor, ShouldEqual, "Generosity")
		})
	})
}

func TestCountryLookups(t *testing.T) {
	Convey("Given a two-year panel", t, func() {
		d := newPanel()

		Convey("Country info matches without regard to case, oldest first", func() {
			rows, found := d.CountryInfo("finland")
			So(found, ShouldBeTrue)
			So(len(rows), ShouldEqual, 2)
			So(rows[0].Year, ShouldEqual, 2018)
			So(rows[0].Corruption, ShouldBeNil)
			So(rows[1].Year, ShouldEqual, 2019)
		})

		Convey("An unknown country is not found", func() {
			_, found := d.CountryInfo("Atlantis")
			So(found, ShouldBeFalse)
		})

		Convey("Comparison uses each country's latest report", func() {
			got, found := d.CompareCountries("Finland", "afghanistan")
			So(found, ShouldBeTrue)
			So(got.Country1.Score, ShouldEqual, 7.8)
			So(got.Country2.Year, ShouldEqual, 2019)
			So(got.ScoreDifference, ShouldEqual, 4.6)
		})

		Convey("Comparison needs both countries", func() {
			_, found := d.CompareCountries("Finland", "Atlantis")
			So(found, ShouldBeFalse)
		})
	})
}

func TestHappinessGap(t *testing.T) {
	Convey("Given a two-year panel", t, func() {
		d := newPanel()

		Convey("Every region reports its extremes in the latest year", func() {
			got := d.HappinessGap("")
			So(len(got), ShouldEqual, 2)
			So(got[0].Region, ShouldEqual, "South Asia")
			So(got[0].Happiest.Country, ShouldEqual, "India")
			So(got[0].Unhappiest.Country, ShouldEqual, "Afghanistan")
			So(got[0].Gap, ShouldEqual, 0.8)
			So(got[1].Region, ShouldEqual, "Western Europe")
			So(got[1].Gap, ShouldEqual, 2.5)
		})

		Convey("A region filter keeps only that region", func() {
			got := d.HappinessGap("western europe")
			So(len(got), ShouldEqual, 1)
			So(got[0].Happiest.Country, ShouldEqual, "Finland")
			So(got[0].Unhappiest.Country, ShouldEqual, "Greece")
		})

		Convey("An unknown region yields an empty list", func() {
			So(d.HappinessGap("Antarctica"), ShouldBeEmpty)
		})
	})
}

func TestCountryRankTrend(t *testing.T) {
	Convey("Given a two-year panel", t, func() {
		d := newPanel()

		Convey("A single country's trend runs oldest first", func() {
			got := d.CountryRankTrend("Finland")
			So(got, ShouldResemble, []happiness.RankTrend{{
				Country: "Finland",
				Trend: []happiness.RankPoint{
					{Year: 2018, Rank: 1, Score: 7.6},
					{Year: 2019, Rank: 1, Score: 7.8},
				},
			}})
		})

		Convey("Without a country every country is listed", func() {
			got := d.CountryRankTrend("")
			So(len(got), ShouldEqual, 5)
			So(got[0].Country, ShouldEqual, "Afghanistan")
		})
	})
}

func TestFactorAverages(t *testing.T) {
	Convey("Given readings with missing corruption values", t, func() {
		got := newPanel().FactorAverages()

		Convey("Missing values are skipped in the means", func() {
			So(got.Global.Corruption, ShouldEqual, 0.2)
			So(got.Global.Generosity, ShouldEqual, 0.5)
			So(len(got.Regions), ShouldEqual, 2)
			So(got.Regions[0].Region, ShouldEqual, "South Asia")
			So(got.Regions[0].Corruption, ShouldEqual, 0.05)
			So(got.Regions[1].Corruption, ShouldEqual, 0.3)
		})
	})
}

func TestFromTable(t *testing.T) {
	Convey("Given a report CSV with a missing corruption cell", t, func() {
		src := strings.Join([]string{
			"Country,Region,Year,Rank,Score,GDP,SocialSupport,Health,Freedom,Generosity,Corruption",
			"Finland,Western Europe,2019,1,7.769,1.34,1.587,0.986,0.596,0.153,0.393",
			"Finland,Western Europe,2018,1,7.632,1.305,1.592,0.874,0.681,0.202,",
		}, "\n")

		tbl, err := table.Read(context.Background(), strings.NewReader(src), happiness.Schema())
		So(err, ShouldBeNil)

		d, err := happiness.FromTable(tbl)
		So(err, ShouldBeNil)
		So(d.Len(), ShouldEqual, 2)

		rows, _ := d.CountryInfo("Finland")
		So(rows[0].Corruption, ShouldBeNil)
		So(*rows[1].Corruption, ShouldEqual, 0.393)
	})
}
