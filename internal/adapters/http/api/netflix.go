package api

import (
	"net/http"

	"github.com/dara-lab/dara/internal/domain/netflix"
)

func (s *Server) netflixRoutes() []route {
	ds := s.deps.Netflix
	return []route{
		{"/api/movie-title", "movie_title", titleSearch("api.movie_title", "No movies found", func(title string) ([]netflix.Title, bool) {
			return ds().MovieTitle(title)
		})},
		{"/api/tv-title", "tv_title", titleSearch("api.tv_title", "No TV shows found", func(title string) ([]netflix.Title, bool) {
			return ds().TVTitle(title)
		})},
		{"/api/movie-tv-distribution", "movie_tv_distribution", plain(ds, (*netflix.Dataset).MovieTVDistribution)},
		{"/api/top-directors", "top_directors", plain(ds, (*netflix.Dataset).TopDirectors)},
		{"/api/country-stats", "data", plain(ds, (*netflix.Dataset).CountryStats)},
		{"/api/rating-distribution", "rating_distribution", plain(ds, (*netflix.Dataset).RatingDistribution)},
	}
}

func titleSearch(op, none string, search func(string) ([]netflix.Title, bool)) queryFunc {
	return func(r *http.Request) (any, error) {
		title := r.URL.Query().Get("title")
		if title == "" {
			return nil, missingParam(op, "Please provide ?title= parameter.")
		}
		res, found := search(title)
		if !found {
			return noResults{Message: none, Query: title}, nil
		}
		return res, nil
	}
}
