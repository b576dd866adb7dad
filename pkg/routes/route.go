package routes

import "net/http"

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Get returns a GET route.
func Get(pattern string, handler http.HandlerFunc) Route {
	return Route{Method: http.MethodGet, Pattern: pattern, Handler: handler}
}

// Post returns a POST route.
func Post(pattern string, handler http.HandlerFunc) Route {
	return Route{Method: http.MethodPost, Pattern: pattern, Handler: handler}
}

func (r Route) pattern(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
