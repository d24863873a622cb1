package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	service "github.com/dara-lab/dara/internal/app"
	"github.com/dara-lab/dara/internal/domain/energy"
	"github.com/dara-lab/dara/internal/domain/happiness"
	"github.com/dara-lab/dara/internal/domain/ipl"
	"github.com/dara-lab/dara/internal/domain/netflix"
	"github.com/dara-lab/dara/internal/domain/olympics"
	"github.com/dara-lab/dara/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func fixtures() service.Datasets {
	return service.Datasets{
		Olympics: olympics.New([]olympics.Record{
			{ID: 1, Name: "A", Sex: "F", NOC: "USA", Year: 2000, Season: olympics.Summer, Games: "2000 Summer", Sport: "Swimming", Event: "100m", Medal: olympics.Gold},
		}),
		IPL: ipl.New(
			[]ipl.Ball{{MatchID: 1, Batter: "X", Bowler: "Y", BattingTeam: "A"}},
			[]ipl.Match{{ID: 1, Team1: "A", Team2: "B"}},
		),
		Netflix:   netflix.New([]netflix.Title{{ShowID: "s1", Type: netflix.Movie, Title: "T"}}),
		Happiness: happiness.New([]happiness.Entry{{Country: "C", Region: "R", Year: 2020}}),
		Energy:    energy.New([]energy.Reading{{Country: "C", Year: 2020}, {Country: "D", Year: 2020}}),
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it is not started and reports no rows", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Started(), ShouldBeFalse)
			So(svc.GetStats().Rows, ShouldBeEmpty)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with supplied datasets", t, func() {
		svc := service.New(service.WithDatasets(fixtures()), service.WithLogger(logger.Get()))

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.Started(), ShouldBeTrue)
			})

			Convey("And every dataset should be reachable", func() {
				So(svc.Olympics().Len(), ShouldEqual, 1)
				So(svc.IPL().MatchCount(), ShouldEqual, 1)
				So(svc.Netflix().Len(), ShouldEqual, 1)
				So(svc.Happiness().Len(), ShouldEqual, 1)
				So(svc.Energy().Len(), ShouldEqual, 2)
			})

			Convey("And stats should report row counts", func() {
				stats := svc.GetStats()
				So(stats.Started, ShouldBeTrue)
				So(stats.LoadedAt, ShouldNotBeEmpty)
				So(stats.Rows[service.DatasetEnergy], ShouldEqual, 2)
				So(len(stats.Rows), ShouldEqual, 5)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service whose olympics file is missing", t, func() {
		data := fixtures()
		data.Olympics = nil
		svc := service.New(
			service.WithDatasets(data),
			service.WithPaths(service.Paths{Olympics: filepath.Join(t.TempDir(), "missing.csv")}),
		)

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then the load error is returned and the service stays down", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, service.DatasetOlympics)
				So(svc.Started(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a service reading the energy panel from disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "global_energy.csv")
		csv := "Country,Year,Total Energy Consumption (TWh),Per Capita Energy Use (kWh),Renewable Energy Share (%),Fossil Fuel Dependency (%),Industrial Energy Consumption (%),Household Energy Consumption (%),Carbon Emissions (Million Tons),Energy Price Index (USD/kWh)\n" +
			"Canada,2018,9525.38,42301.43,13.7,70.47,45.18,19.96,3766.11,0.39\n"
		So(os.WriteFile(path, []byte(csv), 0o600), ShouldBeNil)

		data := fixtures()
		data.Energy = nil
		svc := service.New(service.WithDatasets(data), service.WithPaths(service.Paths{Energy: path}))

		Convey("Then the file is loaded at start", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Energy().Len(), ShouldEqual, 1)
		})
	})
}

func TestService_Observe(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithDatasets(fixtures()))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When a query is observed", func() {
			calls := 0
			got := svc.Observe(context.Background(), "energy.renewable_leaders", func() (any, bool) {
				calls++
				res := svc.Energy().RenewableLeaders(10)
				return res, len(res) == 0
			})

			Convey("Then it runs once and its result is passed through", func() {
				So(calls, ShouldEqual, 1)
				leaders, ok := got.([]energy.RenewableLeader)
				So(ok, ShouldBeTrue)
				So(len(leaders), ShouldEqual, 2)
			})
		})
	})
}
