package observability

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// RecoverPanicWithCallback recovers from a panic, logs it with its stack
// trace, then runs callback. It must be called directly in a defer statement:
//
//	go func() {
//	    defer observability.RecoverPanicWithCallback(log, "status server", func() {
//	        close(done)
//	    })
//	    // ...
//	}()
//
// The panic is not re-raised and callback runs only when one was recovered.
func RecoverPanicWithCallback(log *logrus.Logger, where string, callback func()) {
	if r := recover(); r != nil {
		logPanic(log, where, r)
		if callback != nil {
			callback()
		}
	}
}

// MustRecover converts a recovered value into an error. A nil value yields nil.
//
//	defer func() {
//	    err = observability.MustRecover(recover())
//	}()
func MustRecover(r any) error {
	if r != nil {
		return fmt.Errorf("panic: %v", r)
	}
	return nil
}

func logPanic(log *logrus.Logger, where string, r any) {
	log.WithFields(logrus.Fields{
		"panic":   r,
		"stack":   string(debug.Stack()),
		"context": where,
	}).Error("PANIC recovered")
}
