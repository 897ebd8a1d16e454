// Package domain contains the core entities of the study workspace: the user
// profile, learning materials and the flashcards, quizzes and mind maps
// generated from them. It is independent of any storage or delivery mechanism.
package domain
