package api

import (
	"net/http"
	"strconv"
	"strings"
)

// intParam parses an integer query parameter. ok is false when it is absent
// or not an integer.
func intParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	return v, err == nil
}

// yearParam parses a required year. Zero counts as absent.
func yearParam(r *http.Request) (int, bool) {
	year, ok := intParam(r, "year")
	return year, ok && year != 0
}

// intOr parses an integer query parameter, falling back to def when it is
// absent or malformed.
func intOr(r *http.Request, name string, def int) int {
	if v, ok := intParam(r, name); ok {
		return v
	}
	return def
}

// stringOr returns a query parameter, or def when it is absent or empty.
func stringOr(r *http.Request, name, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

// limit reads a top_n or limit parameter capped at the server maximum. A
// negative value keeps all but that many trailing rows.
func (s *Server) limit(r *http.Request, name string, def int) int {
	return min(intOr(r, name, def), s.maxTopN)
}
