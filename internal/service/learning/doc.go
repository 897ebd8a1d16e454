// Package learning owns the study workspace state: materials and the
// flashcards, quizzes and mind maps generated from them, plus the review
// history behind the progress metrics.
//
// A Service is built once at startup and shared by every handler. All
// methods are safe for concurrent use. Generation runs outside the state lock
// and at most one generation per material is in flight at a time.
package learning
