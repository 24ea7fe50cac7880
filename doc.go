package cursorpage

// Package cursorpage provides cursor-based pagination over an ordered
// collection whose ordering key may contain duplicate values.
//
// Overview
//
// A cursor token is an opaque base64 string carrying three things: a boundary
// position (the string-rendered value of the primary ordering field), a
// traversal direction, and an offset that disambiguates ties on the boundary
// value. Tokens round-trip exactly and let a client page forward and backward
// without skipping or duplicating records, even while the collection is being
// written to.
//
// Key concepts
//   - Paginator: orchestrates page-size resolution, ordering resolution,
//     cursor decoding, fetching and link building for a single request.
//   - DataSource: the fetch collaborator. GormSource runs the ordered,
//     filtered, offset query through GORM; SliceSource serves in-memory data.
//   - Orderings: multi-column ordering with explicit directions; the first
//     entry is the primary key used for position comparisons.
//   - Getters: maps ordering columns to field values for position rendering.
//
// See README and examples for usage details.
