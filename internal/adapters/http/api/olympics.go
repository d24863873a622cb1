package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dara-lab/dara/internal/domain/olympics"
)

// plain adapts a query that takes no request parameters. The dataset is
// resolved per request.
func plain[D, T any](dataset func() D, q func(D) T) queryFunc {
	return func(*http.Request) (any, error) { return q(dataset()), nil }
}

func (s *Server) olympicsRoutes() []route {
	ds := s.deps.Olympics
	return []route{
		{"/api/medals/top-countries", "top_countries", func(r *http.Request) (any, error) {
			return ds().TopCountries(s.limit(r, "top_n", 10)), nil
		}},
		{"/api/medals/country/{noc}", "country_medals", func(r *http.Request) (any, error) {
			return ds().CountryMedalsByYear(strings.ToUpper(r.PathValue("noc")), intOr(r, "year", 0)), nil
		}},
		{"/api/medals/rankings", "country_ranking", func(r *http.Request) (any, error) {
			year, ok := yearParam(r)
			if !ok {
				return nil, missingParam("api.country_ranking", "Year parameter is required")
			}
			return ds().CountryRanking(year, stringOr(r, "season", olympics.Summer)), nil
		}},

		{"/api/athletes/top-decorated", "most_decorated_athletes", func(r *http.Request) (any, error) {
			return ds().MostDecoratedAthletes(s.limit(r, "top_n", 10)), nil
		}},
		{"/api/athletes/youngest-oldest", "youngest_oldest_medalists", plain(ds, (*olympics.Dataset).YoungestOldestMedalists)},
		{"/api/athletes/most-experienced", "most_experienced_athletes", plain(ds, (*olympics.Dataset).MostExperiencedAthletes)},
		{"/api/athletes/comebacks", "comeback_athletes", plain(ds, (*olympics.Dataset).ComebackAthletes)},
		{"/api/athletes/one-hit-wonders", "one_hit_wonders", plain(ds, (*olympics.Dataset).OneHitWonders)},
		{"/api/athletes/age-defying", "age_defying_athletes", plain(ds, (*olympics.Dataset).AgeDefyingAthletes)},
		{"/api/athletes/crossover", "crossover_athletes", plain(ds, (*olympics.Dataset).CrossoverAthletes)},

		{"/api/sports/physical-stats", "physical_stats", func(r *http.Request) (any, error) {
			return ds().PhysicalStatsBySport(r.URL.Query().Get("sport")), nil
		}},
		{"/api/sports/evolution", "sport_evolution", plain(ds, (*olympics.Dataset).SportEvolutions)},
		{"/api/sports/extinct", "extinct_sports", plain(ds, (*olympics.Dataset).ExtinctSports)},
		{"/api/sports/monopoly", "sport_monopoly", plain(ds, (*olympics.Dataset).SportMonopolies)},
		{"/api/sports/dominant/{sport}", "dominant_countries", func(r *http.Request) (any, error) {
			return ds().DominantCountries(r.PathValue("sport")), nil
		}},
		{"/api/sports/participation", "sport_participation", plain(ds, (*olympics.Dataset).SportParticipations)},
		{"/api/sports/dropout-rate", "dropout_rate_by_sport", plain(ds, (*olympics.Dataset).DropoutRateBySport)},

		{"/api/countries/participation-growth", "country_participation_growth", plain(ds, (*olympics.Dataset).CountryParticipationGrowth)},
		{"/api/countries/underdog", "underdog_nations", plain(ds, (*olympics.Dataset).UnderdogNations)},
		{"/api/countries/consistent", "consistent_countries", func(r *http.Request) (any, error) {
			return ds().ConsistentCountries(intOr(r, "min_olympics", 10)), nil
		}},
		{"/api/countries/medal-droughts", "medal_droughts", plain(ds, (*olympics.Dataset).MedalDroughts)},
		{"/api/countries/conversion-rate", "medal_conversion_rate", func(r *http.Request) (any, error) {
			year, ok := yearParam(r)
			if !ok {
				return nil, missingParam("api.medal_conversion_rate", "Year parameter is required")
			}
			return ds().MedalConversionRate(year, stringOr(r, "season", olympics.Summer)), nil
		}},
		{"/api/countries/small-success", "small_country_success", plain(ds, (*olympics.Dataset).SmallCountrySuccesses)},

		{"/api/demographics/gender-trend", "gender_participation_trend", plain(ds, (*olympics.Dataset).GenderParticipationTrend)},
		{"/api/demographics/gender-parity", "gender_parity", func(r *http.Request) (any, error) {
			return ds().GenderParityByCountry(intOr(r, "year", 0)), nil
		}},
		{"/api/demographics/gender-by-sport", "gender_parity_by_sport", plain(ds, (*olympics.Dataset).GenderParityBySport)},

		{"/api/host/cities", "host_cities", plain(ds, (*olympics.Dataset).HostCities)},
		{"/api/host/home-advantage", "home_advantage", plain(ds, (*olympics.Dataset).HomeAdvantageAnalysis)},
		{"/api/host/season-comparison", "summer_vs_winter", plain(ds, (*olympics.Dataset).SummerVsWinter)},

		{"/api/insights/bmi-analysis", "bmi_analysis", plain(ds, (*olympics.Dataset).BMIAnalysisBySport)},
		{"/api/insights/physical-evolution/{sport}", "physical_changes", func(r *http.Request) (any, error) {
			return ds().PhysicalChangesOverTime(r.PathValue("sport")), nil
		}},
		{"/api/insights/age-sweet-spot", "age_sweet_spot", plain(ds, (*olympics.Dataset).AgeSweetSpotBySport)},
		{"/api/insights/gold-rush", "gold_rush_moments", func(r *http.Request) (any, error) {
			return ds().GoldRushMoments(intOr(r, "threshold", 20)), nil
		}},
		{"/api/insights/boycott-impact", "boycott_impact", plain(ds, (*olympics.Dataset).BoycottImpactAnalysis)},

		{"/api/names/common", "most_common_names", func(r *http.Request) (any, error) {
			return ds().MostCommonNames(s.limit(r, "top_n", 20)), nil
		}},
		{"/api/names/lucky", "lucky_names", plain(ds, (*olympics.Dataset).LuckyNames)},
		{"/api/names/family-legacies", "family_legacies", plain(ds, (*olympics.Dataset).FamilyLegacies)},
		{"/api/names/trends", "name_trends_by_decade", plain(ds, (*olympics.Dataset).NameTrendsByDecade)},

		{"/api/achievements/first-timers/{year}", "first_time_medalists", func(r *http.Request) (any, error) {
			year, err := strconv.Atoi(r.PathValue("year"))
			if err != nil {
				return nil, WrapKind("api.first_time_medalists", ErrNotFound, err)
			}
			return ds().FirstTimeMedalists(year), nil
		}},

		{"/api/search/athlete", "athlete_search", func(r *http.Request) (any, error) {
			name := r.URL.Query().Get("name")
			if name == "" {
				return nil, missingParam("api.athlete_search", "Name parameter required")
			}
			res, found := ds().SearchAthletes(name)
			if !found {
				return noResults{Message: "No athletes found", Query: name}, nil
			}
			return res, nil
		}},
		{"/api/search/sport", "sport_search", func(r *http.Request) (any, error) {
			sport := r.URL.Query().Get("sport")
			if sport == "" {
				return nil, missingParam("api.sport_search", "Sport parameter required")
			}
			res, found := ds().SearchSport(sport)
			if !found {
				return noResults{Message: "No sports found", Query: sport}, nil
			}
			return res, nil
		}},
	}
}
