// Package postgres persists the auth session snapshot in PostgreSQL.
//
// Connections go through database/sql with the pgx driver. The schema is
// embedded and applied with goose at startup.
package postgres
