package netflix_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dara-lab/dara/internal/domain/netflix"
	"github.com/dara-lab/dara/internal/table"
	. "github.com/smartystreets/goconvey/convey"
)

func newCatalogue() *netflix.Dataset {
	return netflix.New([]netflix.Title{
		{ShowID: "s1", Type: netflix.Movie, Title: "The Irishman", Director: "Martin Scorsese", Country: "United States", Rating: "R", ReleaseYear: 2019},
		{ShowID: "s2", Type: netflix.Movie, Title: "Irish Wish", Director: "Janeen Damian", Country: "United States, Ireland", Rating: "PG", ReleaseYear: 2024},
		{ShowID: "s3", Type: netflix.TVShow, Title: "Derry Girls", Country: "United Kingdom, Ireland", Rating: "TV-MA", ReleaseYear: 2018},
		{ShowID: "s4", Type: netflix.Movie, Title: "Silence", Director: "Martin Scorsese", Country: "United States,Mexico", Rating: "R", ReleaseYear: 2016},
		{ShowID: "s5", Type: netflix.TVShow, Title: "Dark", Director: "Baran bo Odar, Jantje Friese", Country: "Germany", ReleaseYear: 2017},
	})
}

func TestTitleSearch(t *testing.T) {
	Convey("Given a small catalogue", t, func() {
		d := newCatalogue()

		Convey("When movies are searched by a lower-case fragment", func() {
			hits, found := d.MovieTitle("irish")

			Convey("Then every matching movie is returned in catalogue order", func() {
				So(found, ShouldBeTrue)
				So(len(hits), ShouldEqual, 2)
				So(hits[0].Title, ShouldEqual, "The Irishman")
				So(hits[1].Title, ShouldEqual, "Irish Wish")
			})
		})

		Convey("TV search does not see movies", func() {
			hits, found := d.TVTitle("irish")
			So(found, ShouldBeFalse)
			So(hits, ShouldBeEmpty)
		})

		Convey("TV search matches shows", func() {
			hits, found := d.TVTitle("DERRY")
			So(found, ShouldBeTrue)
			So(hits[0].ShowID, ShouldEqual, "s3")
		})
	})
}

func TestDistributions(t *testing.T) {
	Convey("Given a small catalogue", t, func() {
		d := newCatalogue()

		Convey("Types are counted with their share", func() {
			got := d.MovieTVDistribution()
			So(len(got), ShouldEqual, 2)
			So(got[0].Type, ShouldEqual, netflix.Movie)
			So(got[0].Count, ShouldEqual, 3)
			So(got[0].Percentage, ShouldEqual, 60.0)
			So(got[1].Percentage, ShouldEqual, 40.0)
		})

		Convey("Ratings ignore unrated titles", func() {
			got := d.RatingDistribution()
			So(len(got), ShouldEqual, 3)
			So(got[0].Rating, ShouldEqual, "R")
			So(got[0].Percentage, ShouldEqual, 50.0)
			So(got[1].Rating, ShouldEqual, "PG")
			So(got[2].Rating, ShouldEqual, "TV-MA")

			total := 0
			for _, r := range got {
				total += r.Count
			}
			So(total, ShouldEqual, 4)
		})
	})
}

func TestTopDirectors(t *testing.T) {
	Convey("Given titles with co-directors", t, func() {
		got := newCatalogue().TopDirectors()

		Convey("Each credited director is counted once per title", func() {
			So(got, ShouldResemble, []netflix.DirectorCount{
				{Director: "Martin Scorsese", Titles: 2},
				{Director: "Baran bo Odar", Titles: 1},
				{Director: "Janeen Damian", Titles: 1},
				{Director: "Jantje Friese", Titles: 1},
			})
		})
	})
}

func TestCountryStats(t *testing.T) {
	Convey("Given co-produced titles", t, func() {
		got := newCatalogue().CountryStats()

		Convey("Every listed country gets a credit split by type", func() {
			So(got, ShouldResemble, []netflix.CountryStat{
				{Country: "United States", Total: 3, Movies: 3, TVShows: 0},
				{Country: "Ireland", Total: 2, Movies: 1, TVShows: 1},
				{Country: "Germany", Total: 1, Movies: 0, TVShows: 1},
				{Country: "Mexico", Total: 1, Movies: 1, TVShows: 0},
				{Country: "United Kingdom", Total: 1, Movies: 0, TVShows: 1},
			})
		})
	})

	Convey("Given an empty catalogue", t, func() {
		d := netflix.New(nil)
		So(d.CountryStats(), ShouldBeEmpty)
		So(d.TopDirectors(), ShouldBeEmpty)
		So(d.RatingDistribution(), ShouldBeEmpty)
	})
}

func TestFromTable(t *testing.T) {
	Convey("Given a catalogue CSV with missing cells", t, func() {
		src := strings.Join([]string{
			"show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description",
			`s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,"As her father nears the end of his life, filmmaker Kirsten Johnson stages his death."`,
			`s2,TV Show,Blood & Water,,"Ama Qamata, Khosi Ngema","South Africa","September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas",After crossing paths at a party.`,
		}, "\n")

		tbl, err := table.Read(context.Background(), strings.NewReader(src), netflix.Schema())
		So(err, ShouldBeNil)

		d, err := netflix.FromTable(tbl)
		So(err, ShouldBeNil)
		So(d.Len(), ShouldEqual, 2)

		hits, found := d.TVTitle("blood")
		So(found, ShouldBeTrue)
		So(hits[0].Director, ShouldEqual, "")
		So(hits[0].ReleaseYear, ShouldEqual, 2021)
	})
}
