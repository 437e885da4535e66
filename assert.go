package simplevector

// must panics with msg when a caller breaks a documented precondition.
// These are programming errors, never recoverable runtime failures.
func must(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// debugAssert is compiled in only with the simplevector_debug build tag.
// It guards the unchecked accessors, which stay branch-free in release builds.
func debugAssert(cond bool, msg string) {
	if debugChecks && !cond {
		panic(msg)
	}
}
