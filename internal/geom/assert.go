package geom

// Assert panics when an internal invariant is violated. Reserved for
// programming-bug conditions (a stage calling another with malformed
// state), never for bad input data — data problems are reported as
// errors or topology_error flags instead.
func Assert(cond bool, msg string) {
	if !cond {
		panic("assertion failed: " + msg)
	}
}
