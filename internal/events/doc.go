// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit events without knowing which handlers will process them. The
// learning service uses this to request background content generation, which
// the task package turns into queued work.
//
// The primary components are:
//   - TaskRequestEvent: a request to create a background task
//   - EventHandler: interface for components that can handle events
//   - EventEmitter: interface for components that can emit events
package events
