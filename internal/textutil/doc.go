// Package textutil provides the text canonicalization primitives used for
// song title and artist comparison.
//
// The primary use cases are:
//   - Normalizing free text for fuzzy equality checks (Normalize)
//   - Stripping parenthetical suffixes from titles (CleanTitle)
//   - Removing punctuation for looser search queries (Simplify)
//   - Reducing artist credits to the primary artist (CleanArtist)
//
// All functions are pure and total. Normalized output is only ever used for
// comparison, never for display or persistence.
package textutil
