// Package generation turns a learning material into study content: flashcards,
// a quiz and a mind map. The Generator interface is the boundary between the
// learning service and whatever produces the content, either the built-in
// simulated generator or an LLM-backed one such as Gemini.
package generation
