package bvh

import (
	"log/slog"
	"sync/atomic"
)

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger overrides the logger this package uses to report
// capacity-exhaustion and build-fallback events (SPEC_FULL.md §3.2). A nil
// logger restores the default, which logs to slog's default handler.
func SetLogger(l *slog.Logger) {
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
