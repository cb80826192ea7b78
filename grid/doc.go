// Package grid models the rectangular space map consumed by the escape
// package: a 2D array of small cell kinds that is immutable once built.
//
// What:
//
//   - Grid wraps a rectangular row-major array of CellKind values.
//   - Cell kinds: Void (0), Node (1), Station (2), Singularity (3).
//   - Coord addresses a cell by (Row, Col); Row grows downwards.
//   - Builders: From2D for any [][]T of Go integers, FromAny for values of
//     unknown static type, Parse for the plain-text form.
//
// Why:
//
//   - The escape propagator needs O(1) cell lookups and a cheap bounds check.
//   - Boundary layers (CLI, HTTP) receive grids as text or JSON and must
//     reject malformed input before any traversal starts.
//
// Text form:
//
//	# comment lines and blank lines are ignored
//	0100
//	0021
//	3000
//
// Cells may also be separated by spaces or commas ("0 1 0 0", "0,1,0,0").
//
// Complexity:
//
//   - From2D, FromAny, Parse: O(R×C) time and memory.
//   - At, InBounds:           O(1).
//   - Transpose, Values:      O(R×C).
//
// Errors:
//
//   - ErrTypeMismatch:   FromAny got something that is not a 2D integer array.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrUnknownKind:    a cell value is outside 0..3.
//   - ErrSyntax:         Parse met a character that is not a cell digit.
//
// Empty grids (no rows, or rows without columns) are valid and have Size 0.
package grid
