// Package probe checks a running server against the endpoint catalog: every
// catalogued example must answer 200 under its envelope key, and answer the
// same bytes twice.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Number of concurrent requests
	Timeout time.Duration // HTTP request timeout
	Only    string        // Restrict to one catalog group; empty probes all
	Verbose bool          // Log every endpoint, not only failures
}

// Result is the outcome of probing one endpoint.
type Result struct {
	Path          string
	Example       string
	Status        int
	Key           string
	Deterministic bool
	Duration      time.Duration
	Problems      []string
}

// OK reports whether the endpoint passed every check.
func (r Result) OK() bool { return len(r.Problems) == 0 }

// Stats holds run statistics.
type Stats struct {
	Checked   int
	Passed    int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
