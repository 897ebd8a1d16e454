// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Only the auth session snapshot is persisted; learning state lives in
// memory for the lifetime of the process.
package store
