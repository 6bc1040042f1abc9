//go:build gocoro_id16

package gocoro

import "math"

// ID is a coroutine's user-assigned identity, built with gocoro_id16 to use
// a 16-bit width.
type ID = int16

// NotSetID is the sentinel value a coroutine's ID holds until SetID is
// called on it.
const NotSetID ID = math.MinInt16
