// Package auth keeps track of the signed-in user and issues the access tokens
// that protect the HTTP API.
//
// SessionService is the single source of truth for who is signed in. Its
// state is persisted through a store.SessionStore so a restart keeps the user
// signed in. JWTService signs and verifies HMAC-SHA256 access tokens.
package auth
