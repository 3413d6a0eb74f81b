// Package docs serves the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var spec []byte

// Document holds the OpenAPI document in both encodings.
type Document struct {
	yaml []byte
	json []byte
}

// Load parses the embedded document and prepares its JSON rendition.
func Load() (*Document, error) {
	var raw interface{}
	if err := yaml.Unmarshal(spec, &raw); err != nil {
		return nil, fmt.Errorf("parsing openapi.yaml: %w", err)
	}

	data, err := json.Marshal(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("encoding openapi json: %w", err)
	}

	return &Document{yaml: spec, json: data}, nil
}

// normalize turns yaml maps with non-string keys into JSON-encodable maps.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

func (d *Document) ServeYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(d.yaml)
}

func (d *Document) ServeJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(d.json)
}
