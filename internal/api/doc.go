// Package api exposes the auth session and the learning workspace over HTTP.
// Handlers decode and validate JSON requests, call the services and map their
// errors to status codes and client-safe messages.
package api
