// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API to write flashcards and quiz questions for a
// learning material.
//
// Key components:
//
// 1. Generator:
//   - Implements the generation.Generator interface
//   - Renders a prompt from the material title and requested output sizes
//   - Requests structured JSON output with a response schema
//
// 2. Response Processing:
//   - Parses the JSON document into generation.Content
//   - Drops questions whose correct answer is not one of their options
//   - Attaches the standard mind map template
//
// 3. Error Handling:
//   - Retries transient API failures with exponential backoff and jitter
//   - Maps safety blocks and malformed output to permanent generation errors
package gemini
