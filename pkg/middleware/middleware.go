// Package middleware provides the HTTP middleware stack applied to modules:
// request logging, CORS, and panic recovery.
package middleware

import "net/http"

// Chain is an ordered middleware stack. The first middleware added is the
// outermost when applied.
type Chain struct {
	stack []func(http.Handler) http.Handler
}

// New creates a Chain holding the given middleware in order.
func New(mw ...func(http.Handler) http.Handler) *Chain {
	return &Chain{stack: mw}
}

// Use appends middleware to the chain.
func (c *Chain) Use(mw ...func(http.Handler) http.Handler) {
	c.stack = append(c.stack, mw...)
}

// Len returns the number of middleware in the chain.
func (c *Chain) Len() int {
	return len(c.stack)
}

// Apply wraps handler with every middleware in the chain.
func (c *Chain) Apply(handler http.Handler) http.Handler {
	for i := len(c.stack) - 1; i >= 0; i-- {
		handler = c.stack[i](handler)
	}
	return handler
}
