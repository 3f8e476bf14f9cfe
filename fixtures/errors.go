// File: errors.go
// Role: sentinel errors for the fixtures package, mirroring the teacher's
//       builder package error policy (sentinels only, %w wrapping at call
//       sites, never stringified into the sentinel itself).
package fixtures

import "errors"

// ErrTooFewEntities indicates a size parameter (n, rows, cols, depth, fanout)
// is smaller than the constructor's documented minimum.
var ErrTooFewEntities = errors.New("fixtures: parameter too small")

// ErrConstructFailed indicates Build or Apply received a nil Constructor.
var ErrConstructFailed = errors.New("fixtures: construction failed")
