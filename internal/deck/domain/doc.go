// Package domain implements the domain layer for infection deck tracking.
//
// This package follows the same DDD split used elsewhere in the codebase:
//   - Contains only pure Go code with standard library imports
//   - Defines the DeckState entity and the CardGroup value object
//   - Implements the deck bookkeeping rules (draw, reshuffle, discard
//     removal, color annotations) and the display grouping algorithm
//   - Has no knowledge of infrastructure concerns (snapshots, files, CLI)
//
// # The deck model
//
// A Pandemic-style infection deck becomes partially known the moment an
// epidemic reshuffles the discard pile onto the top of the deck. DeckState
// captures that knowledge as a stack of known segments (InfectionDecks,
// index 0 on top) sitting above the unknown remainder, plus the discard
// pile and per-card color annotations.
//
// All card IDs are compared with exact string equality. Normalizing user
// input into canonical IDs is the command layer's job, not this package's.
package domain
