package api

import (
	"net/http"

	"github.com/dara-lab/dara/internal/domain/energy"
)

func (s *Server) energyRoutes() []route {
	ds := s.deps.Energy
	return []route{
		{"/api/global-summary", "global_summary", plain(ds, (*energy.Dataset).GlobalSummary)},
		{"/api/renewable-leaders", "renewable_leaders", func(r *http.Request) (any, error) {
			return ds().RenewableLeaders(s.limit(r, "limit", 10)), nil
		}},
		{"/api/cleanest-country", "cleanest_countries", func(r *http.Request) (any, error) {
			return ds().CleanestCountries(s.limit(r, "limit", 10)), nil
		}},
		{"/api/compare-price", "price_comparison", func(r *http.Request) (any, error) {
			c1, c2, err := countryPair(r, "api.price_comparison")
			if err != nil {
				return nil, err
			}
			res, found := ds().ComparePrice(c1, c2)
			if !found {
				return noResults{Message: "No data for either country", Query: c1 + ", " + c2}, nil
			}
			return res, nil
		}},
		{"/api/energy-mix", "energy_mix", func(r *http.Request) (any, error) {
			return ds().EnergyMix(r.URL.Query().Get("country")), nil
		}},
		{"/api/factor-summary", "factor_summary", plain(ds, (*energy.Dataset).FactorSummary)},
	}
}
