//go:build gocoro_id8

package gocoro

import "math"

// ID is a coroutine's user-assigned identity, built with gocoro_id8 to use
// an 8-bit width.
type ID = int8

// NotSetID is the sentinel value a coroutine's ID holds until SetID is
// called on it.
const NotSetID ID = math.MinInt8
