package openapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/notewise/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")
	spec.AddServer("http://localhost:8080")
	spec.SetDescription("A test API")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Test API" || spec.Info.Version != "1.0.0" {
		t.Errorf("info: got %+v", spec.Info)
	}
	if spec.Info.Description != "A test API" {
		t.Errorf("description: got %s", spec.Info.Description)
	}
	spec.AddServer("http://localhost:8080")
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "http://localhost:8080" {
		t.Errorf("servers: got %v", spec.Servers)
	}
	if spec.Paths == nil {
		t.Fatal("paths should not be nil")
	}
}

func TestComponents(t *testing.T) {
	c := openapi.NewComponents()

	if _, ok := c.Schemas["Error"]; !ok {
		t.Fatal("Error schema missing")
	}

	for _, name := range []string{"BadRequest", "PayloadTooLarge", "ServiceUnavailable", "InternalError"} {
		resp, ok := c.Responses[name]
		if !ok {
			t.Errorf("%s response missing", name)
			continue
		}
		if ref := resp.Content["application/json"].Schema.Ref; ref != "#/components/schemas/Error" {
			t.Errorf("%s schema ref: got %s", name, ref)
		}
	}

	c.AddSchemas(map[string]*openapi.Schema{"Note": {Type: openapi.Type("object")}})
	c.AddResponses(map[string]*openapi.Response{"Gone": {Description: "gone"}})

	if _, ok := c.Schemas["Note"]; !ok {
		t.Error("added schema missing")
	}
	if _, ok := c.Responses["BadRequest"]; !ok {
		t.Error("default response lost after AddResponses")
	}
}

func TestRefs(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"schema", openapi.SchemaRef("Note").Ref, "#/components/schemas/Note"},
		{"response", openapi.ResponseRef("BadRequest").Ref, "#/components/responses/BadRequest"},
		{"request body", openapi.RequestBodyJSON("IdentifyRequest", true).Content["application/json"].Schema.Ref, "#/components/schemas/IdentifyRequest"},
		{"response json", openapi.ResponseJSON("ok", "IdentifyResponse").Content["application/json"].Schema.Ref, "#/components/schemas/IdentifyResponse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestAddOperation(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	op := &openapi.Operation{Responses: map[int]*openapi.Response{200: {Description: "ok"}}}

	if err := spec.AddOperation("GET", "/status", op); err != nil {
		t.Fatalf("add GET: %v", err)
	}
	if err := spec.AddOperation("POST", "/status", op); err != nil {
		t.Fatalf("add POST: %v", err)
	}
	if err := spec.AddOperation("DELETE", "/status", op); err == nil {
		t.Error("expected error for unsupported method")
	}

	item := spec.Paths["/status"]
	if item.Get != op || item.Post != op {
		t.Errorf("path item: got %+v", item)
	}
}

func TestValidate(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.AddOperation("POST", "/identify", &openapi.Operation{
		RequestBody: openapi.RequestBodyJSON("IdentifyRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("ok", "Error"),
			400: openapi.ResponseRef("BadRequest"),
			418: openapi.ResponseRef("Teapot"),
		},
	})

	err := spec.Validate()
	if err == nil {
		t.Fatal("expected unresolved reference error")
	}
	for _, want := range []string{"#/components/schemas/IdentifyRequest", "#/components/responses/Teapot"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should name %s: %v", want, err)
		}
	}

	if _, err := openapi.MarshalJSON(spec); err == nil {
		t.Error("MarshalJSON should refuse an invalid spec")
	}

	spec.Components.AddSchemas(map[string]*openapi.Schema{"IdentifyRequest": {Type: openapi.Type("object")}})
	spec.Components.AddResponses(map[string]*openapi.Response{"Teapot": {Description: "teapot"}})
	if err := spec.Validate(); err != nil {
		t.Errorf("validate after adding components: %v", err)
	}
}

func TestTypesMarshal(t *testing.T) {
	tests := []struct {
		types openapi.Types
		want  string
	}{
		{openapi.Type("string"), `"string"`},
		{openapi.Type("string", "null"), `["string","null"]`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.types)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != tt.want {
			t.Errorf("got %s, want %s", data, tt.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	path := filepath.Join(t.TempDir(), "docs", "spec.json")

	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parsed["openapi"] != "3.1.0" {
		t.Errorf("openapi: got %v", parsed["openapi"])
	}
}

func TestServeSpec(t *testing.T) {
	data, err := openapi.MarshalJSON(openapi.NewSpec("Test", "1.0.0"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}

	body, _ := io.ReadAll(res.Body)
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("body unmarshal failed: %v", err)
	}

	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatal("etag missing")
	}

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional status: got %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("304 should have no body")
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Scanner API")
	t.Setenv("TEST_OPENAPI_SERVERS", "https://a.example/api, ,https://b.example/api")

	cfg := openapi.Config{}
	env := &openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE", Servers: "TEST_OPENAPI_SERVERS"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "Scanner API" {
		t.Errorf("title: got %s, want Scanner API", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("description should default")
	}
	if len(cfg.Servers) != 2 || cfg.Servers[1] != "https://b.example/api" {
		t.Errorf("servers: got %v", cfg.Servers)
	}

	cfg.Merge(&openapi.Config{Description: "override"})
	if cfg.Description != "override" || cfg.Title != "Scanner API" {
		t.Errorf("merge: got %+v", cfg)
	}
}
