package docs

import (
	"encoding/json"
	"net/http"
)

type document struct {
	APIName   string                `json:"api_name"`
	Version   string                `json:"version"`
	Endpoints map[string][]Endpoint `json:"endpoints"`
}

func render(c Catalog) document {
	d := document{APIName: c.APIName, Version: c.Version, Endpoints: make(map[string][]Endpoint, len(c.Groups))}
	for _, g := range c.Groups {
		d.Endpoints[g.Name] = g.Endpoints
	}
	return d
}

// Handler serves GET /api/docs: the catalog grouped by area.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := Load()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(render(c))
	}
}
