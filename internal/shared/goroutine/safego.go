// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// SafeGo launches fn in a goroutine. A panic is logged with its stack trace
// instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go Recover(log, name, fn)
}

// Recover runs fn on the current goroutine and converts a panic into a log
// entry. It returns true when fn panicked.
func Recover(log logger.Interface, name string, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
	return false
}
