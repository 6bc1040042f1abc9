//go:build gocoro_id32

package gocoro

import "math"

// ID is a coroutine's user-assigned identity, built with gocoro_id32 to use
// a 32-bit width.
type ID = int32

// NotSetID is the sentinel value a coroutine's ID holds until SetID is
// called on it.
const NotSetID ID = math.MinInt32
