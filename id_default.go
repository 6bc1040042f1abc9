//go:build !gocoro_id8 && !gocoro_id16 && !gocoro_id32

package gocoro

import "math"

// ID is a coroutine's user-assigned identity. The width is a build-time
// choice (see id_default.go, id8.go, id16.go, id32.go); this file supplies
// the default 64-bit width.
type ID = int64

// NotSetID is the sentinel value a coroutine's ID holds until SetID is
// called on it: the minimum value representable at the configured width.
const NotSetID ID = math.MinInt64
