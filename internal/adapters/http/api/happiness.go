package api

import (
	"net/http"

	"github.com/dara-lab/dara/internal/domain/happiness"
)

func (s *Server) happinessRoutes() []route {
	ds := s.deps.Happiness
	return []route{
		{"/api/top-countries", "top_countries", func(r *http.Request) (any, error) {
			return ds().TopCountries(s.limit(r, "limit", 10)), nil
		}},
		{"/api/factor-impact", "factor_impact", plain(ds, (*happiness.Dataset).FactorImpact)},
		{"/api/country-info", "country_info", func(r *http.Request) (any, error) {
			name := r.URL.Query().Get("name")
			if name == "" {
				return nil, missingParam("api.country_info", "Please provide ?name=country_name parameter.")
			}
			rows, found := ds().CountryInfo(name)
			if !found {
				return noResults{Message: "No country found", Query: name}, nil
			}
			return rows, nil
		}},
		{"/api/compare-countries", "compare_countries", func(r *http.Request) (any, error) {
			c1, c2, err := countryPair(r, "api.compare_countries")
			if err != nil {
				return nil, err
			}
			res, found := ds().CompareCountries(c1, c2)
			if !found {
				return noResults{Message: "One or both countries not found", Query: c1 + ", " + c2}, nil
			}
			return res, nil
		}},
		{"/api/happiness-gap", "happiness_gap", func(r *http.Request) (any, error) {
			return ds().HappinessGap(r.URL.Query().Get("region")), nil
		}},
		{"/api/country-rank-trend", "country_rank_trend", func(r *http.Request) (any, error) {
			return ds().CountryRankTrend(r.URL.Query().Get("country")), nil
		}},
		{"/api/factor-averages", "factor_averages", plain(ds, (*happiness.Dataset).FactorAverages)},
	}
}

// countryPair reads the required country1 and country2 parameters.
func countryPair(r *http.Request, op string) (c1, c2 string, err error) {
	q := r.URL.Query()
	c1, c2 = q.Get("country1"), q.Get("country2")
	if c1 == "" || c2 == "" {
		return "", "", missingParam(op, "Please provide ?country1= and ?country2= parameters.")
	}
	return c1, c2, nil
}
