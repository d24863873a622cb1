package api

import (
	"net/http"

	"github.com/dara-lab/dara/internal/domain/ipl"
)

// The cricket records take their subject as an optional parameter; an absent
// or unknown name yields zeroed figures.
func (s *Server) iplRoutes() []route {
	ds := s.deps.IPL
	return []route{
		{"/api/team-record", "team_record", func(r *http.Request) (any, error) {
			return ds().TeamRecord(r.URL.Query().Get("team")), nil
		}},
		{"/api/bowler-record", "bowler_record", func(r *http.Request) (any, error) {
			return ds().BowlerRecord(r.URL.Query().Get("bowler")), nil
		}},
		{"/api/batsman-record", "batsman_record", func(r *http.Request) (any, error) {
			return ds().BatsmanRecord(r.URL.Query().Get("batsman")), nil
		}},
		{"/api/allBowlers-record", "bowlers", plain(ds, (*ipl.Dataset).Bowlers)},
		{"/api/allBatsmen-record", "batsmen", plain(ds, (*ipl.Dataset).Batsmen)},
	}
}
