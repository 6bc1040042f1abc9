package gocoro

const schedulerDebug = false

// scheduleLog prints msg if schedulerDebug is turned on at build time.
func scheduleLog(msg string) {
	if schedulerDebug {
		println("---", msg)
	}
}

// scheduleLogCoro prints msg together with a coroutine pointer.
func scheduleLogCoro(msg string, c *Coroutine) {
	if schedulerDebug {
		println("---", msg, c)
	}
}
