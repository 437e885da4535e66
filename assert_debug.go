//go:build simplevector_debug

package simplevector

const debugChecks = true
