// Package task runs background jobs, such as generating study content for
// an uploaded material, on a pool of workers so they never block HTTP request
// handling. Task state is tracked in a TaskStore; unfinished tasks are
// requeued on start and tasks stuck in processing are reset periodically.
package task
