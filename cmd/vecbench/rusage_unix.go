//go:build unix

package main

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// peakRSS returns the process's maximum resident set size in bytes.
func peakRSS() (int64, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, false
	}
	rss := int64(ru.Maxrss)
	// Darwin reports bytes, everyone else kilobytes.
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return rss, true
	}
	return rss * 1024, true
}
