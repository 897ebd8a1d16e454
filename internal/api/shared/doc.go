// Package shared holds the request context keys, JSON decoding and response
// helpers used by both the handlers and the middleware.
package shared
