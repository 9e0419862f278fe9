package notify

import (
	"log"
	"runtime/debug"
)

// Hosted deployments can inject error monitoring here. Request handlers
// surface errors directly; this is for failures inside background work
// like transcription polling.

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

var NotifyErrFn func(severity Severity, data ...interface{})

func RegisterNotifyErrFn(fn func(severity Severity, data ...interface{})) {
	NotifyErrFn = fn
}

func NotifyErr(severity Severity, data ...interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic in NotifyErr: %v\n%s", r, debug.Stack())
		}
	}()

	if NotifyErrFn != nil {
		NotifyErrFn(severity, data...)
	}
}
