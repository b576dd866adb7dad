// Package module mounts prefixed HTTP modules, each with its own router
// and middleware chain, under a single top-level router.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/notewise/pkg/middleware"
)

// Module strips its prefix from incoming requests and hands them to an
// inner router wrapped in the module's middleware chain.
type Module struct {
	prefix  string
	router  http.Handler
	chain   *middleware.Chain
	handler http.Handler
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		router:  router,
		chain:   middleware.New(),
		handler: router,
	}
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's chain. Modules are configured
// before they are mounted; Use is not safe to call while serving.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.chain.Use(mw)
	m.handler = m.chain.Apply(m.router)
}

// Handler returns the inner router wrapped with the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.handler
}

// Serve strips the module prefix from the request path and dispatches to
// the wrapped router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.handler.ServeHTTP(w, withPath(req, strip(req.URL.Path, m.prefix)))
}

func withPath(req *http.Request, path string) *http.Request {
	u := *req.URL
	u.Path = path
	u.RawPath = ""

	r := req.Clone(req.Context())
	r.URL = &u
	return r
}

func strip(path, prefix string) string {
	if rest := strings.TrimPrefix(path, prefix); rest != "" {
		return rest
	}
	return "/"
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
