// Package askweb answers natural-language questions from the live web.
// It searches for candidate pages, extracts their readable text, splits it
// into chunks, ranks the chunks by semantic similarity to the question, and
// asks a language model to answer from the best ones.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package askweb
