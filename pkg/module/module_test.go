package module_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/notewise/pkg/module"
)

func write(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}

func TestNewInvalidPrefixPanics(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"nested path", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic for invalid prefix")
				}
			}()
			module.New(tt.prefix, http.NewServeMux())
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"sub path", "/api/identify", "/identify"},
		{"module root", "/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received string
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				received = r.URL.Path
			})

			m := module.New("/api", mux)
			m.Serve(httptest.NewRecorder(), httptest.NewRequest("POST", tt.path, nil))

			if received != tt.want {
				t.Errorf("inner path: got %s, want %s", received, tt.want)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", write("ok"))

	m := module.New("/api", mux)

	var order []string
	for _, name := range []string{"outer", "inner"} {
		m.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api", nil))

	if !slices.Equal(order, []string{"outer", "inner"}) {
		t.Errorf("middleware order: got %v, want [outer inner]", order)
	}
}

func TestRouterDispatch(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /openapi.json", write("api"))

	router := module.NewRouter()
	router.Mount(module.New("/api", apiMux))
	router.HandleNative("GET /healthz", write("ok"))

	if got := router.Prefixes(); !slices.Equal(got, []string{"/api"}) {
		t.Errorf("prefixes: got %v, want [/api]", got)
	}

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"module route", "/api/openapi.json", http.StatusOK, "api"},
		{"trailing slash", "/api/openapi.json/", http.StatusOK, "api"},
		{"native fallback", "/healthz", http.StatusOK, "ok"},
		{"prefix lookalike", "/apix/openapi.json", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body: got %s, want %s", rec.Body.String(), tt.body)
			}
		})
	}
}
