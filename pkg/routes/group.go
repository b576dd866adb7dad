// Package routes declares HTTP route groups and registers them on a ServeMux.
package routes

import "net/http"

// Group collects routes and child groups under a shared path prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Patterns returns the ServeMux patterns the group expands to, in
// registration order.
func (g Group) Patterns() []string {
	var patterns []string
	g.walk("", func(pattern string, _ Route) {
		patterns = append(patterns, pattern)
	})
	return patterns
}

func (g Group) walk(parent string, fn func(pattern string, r Route)) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		fn(r.pattern(prefix), r)
	}
	for _, child := range g.Children {
		child.walk(prefix, fn)
	}
}

// Register adds every route of the given groups to mux and returns the
// patterns it registered.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var registered []string
	for _, g := range groups {
		g.walk("", func(pattern string, r Route) {
			mux.HandleFunc(pattern, r.Handler)
			registered = append(registered, pattern)
		})
	}
	return registered
}
