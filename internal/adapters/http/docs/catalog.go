// Package docs serves the embedded endpoint catalog.
package docs

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrCatalog is returned when the embedded catalog cannot be decoded.
var ErrCatalog = errors.New("endpoint catalog invalid")

// CatalogYAML contains the embedded endpoint catalog.
//
//go:embed catalog.yaml
var CatalogYAML []byte

// Endpoint describes one GET route. Key is the envelope key of its JSON
// response; Example is a ready-to-request URL path.
type Endpoint struct {
	Path    string `yaml:"path" json:"path"`
	Key     string `yaml:"key" json:"-"`
	Params  string `yaml:"params,omitempty" json:"params,omitempty"`
	Example string `yaml:"example" json:"-"`
}

// Group is a named set of endpoints.
type Group struct {
	Name      string     `yaml:"name"`
	Endpoints []Endpoint `yaml:"endpoints"`
}

// Catalog is the documented API surface.
type Catalog struct {
	APIName string  `yaml:"api_name"`
	Version string  `yaml:"version"`
	Groups  []Group `yaml:"groups"`
}

// Parse decodes a catalog and checks every endpoint names a path and a key.
func Parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrCatalog, err)
	}
	for _, g := range c.Groups {
		for _, e := range g.Endpoints {
			if e.Path == "" || e.Key == "" {
				return Catalog{}, fmt.Errorf("%w: group %q has an endpoint without path or key", ErrCatalog, g.Name)
			}
		}
	}
	return c, nil
}

var loadEmbedded = sync.OnceValues(func() (Catalog, error) { return Parse(CatalogYAML) })

// Load returns the embedded catalog, decoded once.
func Load() (Catalog, error) { return loadEmbedded() }

// Endpoints flattens the catalog in document order.
func (c Catalog) Endpoints() []Endpoint {
	var out []Endpoint
	for _, g := range c.Groups {
		out = append(out, g.Endpoints...)
	}
	return out
}
