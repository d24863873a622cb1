package docs

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	convey.Convey("Given the embedded catalog", t, func() {
		c, err := Load()

		convey.Convey("Then it decodes", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(c.APIName, convey.ShouldEqual, "DARA Data API")
			convey.So(len(c.Groups), convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("And every example targets its own path", func() {
			for _, e := range c.Endpoints() {
				prefix := e.Path
				if i := strings.Index(prefix, "{"); i >= 0 {
					prefix = prefix[:i]
				}
				convey.So(e.Example, convey.ShouldStartWith, prefix)
			}
		})

		convey.Convey("And paths are unique", func() {
			seen := map[string]bool{}
			for _, e := range c.Endpoints() {
				convey.So(seen[e.Path], convey.ShouldBeFalse)
				seen[e.Path] = true
			}
		})
	})
}

func TestParse(t *testing.T) {
	convey.Convey("Given malformed catalogs", t, func() {
		convey.Convey("When the YAML does not decode", func() {
			_, err := Parse([]byte("groups: ["))
			convey.So(errors.Is(err, ErrCatalog), convey.ShouldBeTrue)
		})

		convey.Convey("When an endpoint has no key", func() {
			_, err := Parse([]byte("groups:\n  - name: x\n    endpoints:\n      - path: /api/x\n"))
			convey.So(errors.Is(err, ErrCatalog), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, `"x"`)
		})
	})
}

func TestHandler(t *testing.T) {
	convey.Convey("Given the docs handler", t, func() {
		w := httptest.NewRecorder()
		Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/docs", http.NoBody))

		convey.Convey("Then it serves the grouped catalog as JSON", func() {
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/json; charset=utf-8")

			var body struct {
				APIName   string                         `json:"api_name"`
				Endpoints map[string][]map[string]string `json:"endpoints"`
			}
			convey.So(json.Unmarshal(w.Body.Bytes(), &body), convey.ShouldBeNil)
			convey.So(body.APIName, convey.ShouldEqual, "DARA Data API")
			convey.So(body.Endpoints["search"][0]["path"], convey.ShouldEqual, "/api/search/athlete")
			convey.So(body.Endpoints["search"][0]["params"], convey.ShouldEqual, "name (required)")
			convey.So(body.Endpoints["search"][0], convey.ShouldNotContainKey, "key")
		})
	})
}
