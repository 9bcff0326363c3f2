package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestOpenAPISpec(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/openapi.json", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected json content type, got %q", ct)
	}

	var spec struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("decoding spec: %v", err)
	}
	if !strings.HasPrefix(spec.OpenAPI, "3.") {
		t.Errorf("expected an openapi 3.x document, got %q", spec.OpenAPI)
	}

	for _, path := range []string{
		"/healthz",
		"/api/players",
		"/api/login",
		"/api/sessions",
		"/api/sessions/{id}",
		"/api/sessions/{id}/join",
		"/api/sessions/{id}/move",
		"/api/sessions/{id}/events",
		"/api/sessions/{id}/ws",
	} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("path %q missing from spec", path)
		}
	}

	// Operations on an {id} path must declare the path parameter.
	var moveOp struct {
		Post struct {
			Parameters []struct {
				Name string `json:"name"`
				In   string `json:"in"`
			} `json:"parameters"`
		} `json:"post"`
	}
	if err := json.Unmarshal(spec.Paths["/api/sessions/{id}/move"], &moveOp); err != nil {
		t.Fatalf("decoding move operation: %v", err)
	}
	var hasIDParam bool
	for _, p := range moveOp.Post.Parameters {
		if p.Name == "id" && p.In == "path" {
			hasIDParam = true
		}
	}
	if !hasIDParam {
		t.Error("move operation does not document the id path parameter")
	}
}
