// Package redis persists the auth session snapshot in Redis.
package redis
