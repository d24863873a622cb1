package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/dara-lab/dara/internal/adapters/http/docs"
)

// verify checks two fetches of the same endpoint.
func verify(e docs.Endpoint, first, second response) Result {
	res := Result{Path: e.Path, Example: e.Example, Status: first.status}

	if first.status != http.StatusOK {
		res.Problems = append(res.Problems, fmt.Sprintf("status %d", first.status))
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(first.body, &body); err != nil {
		res.Problems = append(res.Problems, "body is not a JSON object: "+err.Error())
	} else {
		keys := slices.Sorted(maps.Keys(body))
		res.Key = strings.Join(keys, ",")
		if len(keys) != 1 || keys[0] != e.Key {
			res.Problems = append(res.Problems, fmt.Sprintf("envelope keys [%s], want [%s]", res.Key, e.Key))
		}
	}

	res.Deterministic = first.status == second.status && bytes.Equal(first.body, second.body)
	if !res.Deterministic {
		res.Problems = append(res.Problems, "responses differ between fetches")
	}
	return res
}
