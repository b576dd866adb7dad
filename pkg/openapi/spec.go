// Package openapi builds, validates, and serves OpenAPI 3.1 documents.
package openapi

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Spec represents an OpenAPI 3.1 document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec creates a Spec with the given title, version, and default components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    "3.1.0",
		Info:       &Info{Title: title, Version: version},
		Components: NewComponents(),
		Paths:      make(map[string]*PathItem),
	}
}

// AddServer appends a server URL, ignoring duplicates.
func (s *Spec) AddServer(url string) {
	if slices.ContainsFunc(s.Servers, func(sv *Server) bool { return sv.URL == url }) {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// SetDescription sets the API description in the info object.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddOperation attaches op to path under method (GET or POST).
func (s *Spec) AddOperation(method, path string, op *Operation) error {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	default:
		return fmt.Errorf("unsupported method %s for %s", method, path)
	}
	return nil
}

// Validate reports every $ref that does not resolve to a component.
func (s *Spec) Validate() error {
	var missing []string

	checkSchema := func(where string, sc *Schema) {
		walkSchema(sc, func(ref string) {
			name, ok := strings.CutPrefix(ref, schemaPrefix)
			if _, found := s.Components.Schemas[name]; !ok || !found {
				missing = append(missing, where+": "+ref)
			}
		})
	}
	checkResponse := func(where string, r *Response) {
		if r.Ref != "" {
			name, ok := strings.CutPrefix(r.Ref, responsePrefix)
			if _, found := s.Components.Responses[name]; !ok || !found {
				missing = append(missing, where+": "+r.Ref)
			}
		}
		for _, mt := range r.Content {
			checkSchema(where, mt.Schema)
		}
	}

	for name, sc := range s.Components.Schemas {
		checkSchema("schema "+name, sc)
	}
	for name, r := range s.Components.Responses {
		checkResponse("response "+name, r)
	}
	for path, item := range s.Paths {
		for method, op := range map[string]*Operation{"GET": item.Get, "POST": item.Post} {
			if op == nil {
				continue
			}
			where := method + " " + path
			if op.RequestBody != nil {
				for _, mt := range op.RequestBody.Content {
					checkSchema(where, mt.Schema)
				}
			}
			for _, r := range op.Responses {
				checkResponse(where, r)
			}
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("unresolved references: %s", strings.Join(missing, ", "))
	}
	return nil
}

func walkSchema(sc *Schema, ref func(string)) {
	if sc == nil {
		return
	}
	if sc.Ref != "" {
		ref(sc.Ref)
	}
	for _, p := range sc.Properties {
		walkSchema(p, ref)
	}
}

// ServeSpec returns a handler that serves pre-serialized JSON spec bytes with
// an ETag, answering matching If-None-Match requests with 304.
func ServeSpec(specBytes []byte) http.HandlerFunc {
	sum := sha256.Sum256(specBytes)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(specBytes)
	}
}
