// Package netflix answers catalogue queries over netflix_titles.csv.
package netflix

import (
	"context"
	"fmt"

	"github.com/dara-lab/dara/internal/query"
	"github.com/dara-lab/dara/internal/table"
)

// Title types.
const (
	Movie  = "Movie"
	TVShow = "TV Show"
)

const topDirectorsN = 10

// Schema is the declared layout of netflix_titles.csv.
func Schema() table.Schema {
	return table.Schema{
		Name: "netflix_titles",
		Columns: []table.Column{
			{Name: "show_id", Type: table.String},
			{Name: "type", Type: table.String},
			{Name: "title", Type: table.String},
			{Name: "director", Type: table.NullableString},
			{Name: "cast", Type: table.NullableString},
			{Name: "country", Type: table.NullableString},
			{Name: "date_added", Type: table.NullableString},
			{Name: "release_year", Type: table.Int},
			{Name: "rating", Type: table.NullableString},
			{Name: "duration", Type: table.NullableString},
			{Name: "listed_in", Type: table.String},
			{Name: "description", Type: table.String},
		},
	}
}

// Title is one catalogue entry. Missing cells are empty strings.
type Title struct {
	ShowID      string `json:"show_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Country     string `json:"country"`
	DateAdded   string `json:"date_added"`
	ReleaseYear int    `json:"release_year"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
	ListedIn    string `json:"listed_in"`
	Description string `json:"description"`
}

// Dataset is the loaded catalogue. It is immutable and safe for concurrent
// use.
type Dataset struct {
	titles []Title
}

// New builds a dataset from titles. The slice is copied.
func New(titles []Title) *Dataset {
	return &Dataset{titles: append([]Title(nil), titles...)}
}

// Load reads and decodes netflix_titles.csv.
func Load(ctx context.Context, path string) (*Dataset, error) {
	t, err := table.Load(ctx, path, Schema())
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// FromTable decodes a loaded table into titles.
func FromTable(t *table.Table) (*Dataset, error) {
	b := table.Bind(t)
	showID := b.String("show_id")
	typ := b.String("type")
	title := b.String("title")
	director := b.NullString("director")
	cast := b.NullString("cast")
	country := b.NullString("country")
	added := b.NullString("date_added")
	year := b.Int("release_year")
	rating := b.NullString("rating")
	duration := b.NullString("duration")
	listedIn := b.String("listed_in")
	description := b.String("description")
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("netflix: %w", err)
	}

	titles := make([]Title, t.Len())
	for i := range titles {
		titles[i] = Title{
			ShowID:      showID.At(i),
			Type:        typ.At(i),
			Title:       title.At(i),
			Director:    director.At(i).V,
			Cast:        cast.At(i).V,
			Country:     country.At(i).V,
			DateAdded:   added.At(i).V,
			ReleaseYear: int(year.At(i)),
			Rating:      rating.At(i).V,
			Duration:    duration.At(i).V,
			ListedIn:    listedIn.At(i),
			Description: description.At(i),
		}
	}
	return &Dataset{titles: titles}, nil
}

// Len returns the number of titles.
func (d *Dataset) Len() int { return len(d.titles) }

func (d *Dataset) search(typ, text string) ([]Title, bool) {
	hits := query.Filter(d.titles, func(t Title) bool {
		return t.Type == typ && query.ContainsFold(t.Title, text)
	})
	return hits, len(hits) > 0
}

// MovieTitle returns the movies whose title contains text, ignoring case, in
// catalogue order.
func (d *Dataset) MovieTitle(text string) ([]Title, bool) { return d.search(Movie, text) }

// TVTitle returns the TV shows whose title contains text, ignoring case, in
// catalogue order.
func (d *Dataset) TVTitle(text string) ([]Title, bool) { return d.search(TVShow, text) }

// Share is a category's count and its percentage of the counted rows.
type Share struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TypeShare is one title type's share of the catalogue.
type TypeShare struct {
	Type string `json:"type"`
	Share
}

// MovieTVDistribution counts titles per type, most common first.
func (d *Dataset) MovieTVDistribution() []TypeShare {
	types := query.Map(d.titles, func(t Title) string { return t.Type })
	return query.Map(query.ValueCounts(types), func(c query.Counted[string]) TypeShare {
		return TypeShare{Type: c.Key, Share: Share{
			Count:      c.Count,
			Percentage: query.Round2(query.Percent(c.Count, len(types))),
		}}
	})
}

// DirectorCount is a director and the number of titles they are credited on.
type DirectorCount struct {
	Director string `json:"director"`
	Titles   int    `json:"titles"`
}

// TopDirectors counts credits per director, splitting co-directed titles,
// and returns the ten most prolific.
func (d *Dataset) TopDirectors() []DirectorCount {
	var names []string
	for _, t := range d.titles {
		names = append(names, query.SplitList(t.Director)...)
	}
	return query.Map(query.Limit(query.ValueCounts(names), topDirectorsN), func(c query.Counted[string]) DirectorCount {
		return DirectorCount{Director: c.Key, Titles: c.Count}
	})
}

// CountryStat is a production country's catalogue footprint.
type CountryStat struct {
	Country string `json:"country"`
	Total   int    `json:"total"`
	Movies  int    `json:"movies"`
	TVShows int    `json:"tv_shows"`
}

type credit struct {
	country string
	typ     string
}

// CountryStats counts titles per production country, splitting
// co-productions, largest catalogue first.
func (d *Dataset) CountryStats() []CountryStat {
	var credits []credit
	for _, t := range d.titles {
		for _, c := range query.SplitList(t.Country) {
			credits = append(credits, credit{country: c, typ: t.Type})
		}
	}
	country := func(c credit) (string, bool) { return c.country, true }
	out := query.Map(query.GroupBy(credits, country), func(g query.Group[string, credit]) CountryStat {
		return CountryStat{
			Country: g.Key,
			Total:   len(g.Rows),
			Movies:  query.Count(g.Rows, func(c credit) bool { return c.typ == Movie }),
			TVShows: query.Count(g.Rows, func(c credit) bool { return c.typ == TVShow }),
		}
	})
	query.Sort(out, query.Desc(func(c CountryStat) int { return c.Total }))
	return out
}

// RatingShare is one maturity rating's share of the rated titles.
type RatingShare struct {
	Rating string `json:"rating"`
	Share
}

// RatingDistribution counts rated titles per rating, most common first.
// Unrated titles are left out of both counts and percentages.
func (d *Dataset) RatingDistribution() []RatingShare {
	var ratings []string
	for _, t := range d.titles {
		if t.Rating != "" {
			ratings = append(ratings, t.Rating)
		}
	}
	return query.Map(query.ValueCounts(ratings), func(c query.Counted[string]) RatingShare {
		return RatingShare{Rating: c.Key, Share: Share{
			Count:      c.Count,
			Percentage: query.Round2(query.Percent(c.Count, len(ratings))),
		}}
	})
}
