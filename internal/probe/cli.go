package probe

import (
	"os"
)

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`DARA API Probe
==============

Requests every endpoint listed in the API catalog twice and checks that each
answers 200, wraps its result under the documented key, and returns the same
bytes both times.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:5000")
  -workers int
        Number of concurrent requests (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -only string
        Probe a single catalog group, e.g. "medals" or "energy"
  -log-format string
        Log output format: text or json (default "text")
  -verbose
        Log every endpoint, not only failures
  -help
        Show this help message

Examples:
  # Probe a local server
  go run ./cmd/probe

  # Probe only the happiness endpoints of a remote server
  go run ./cmd/probe -url http://dara.internal:5000 -only happiness -verbose
`)
}
