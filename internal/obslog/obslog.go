// Package obslog is jsonremedy's thin logging wrapper. The teacher
// never reaches for a structured logging library (see
// internal/webui/middleware.go's request logger) — it calls
// log.Printf directly — so jsonremedy does the same rather than
// introducing a dependency nothing else in the corpus uses.
package obslog

import "log"

// Logger gates Debug output behind Options.Debug while Warnf always
// fires, mirroring the teacher's pattern of an always-on request log
// plus occasional debug-only Printf calls guarded by a verbose flag.
type Logger struct {
	debug bool
}

func New(debug bool) *Logger {
	return &Logger{debug: debug}
}

// Debugf logs only when the logger was constructed with debug=true
// (Options.Debug), e.g. one line per stage transition.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	log.Printf("[jsonremedy] "+format, args...)
}

// Warnf always logs, for conditions worth surfacing regardless of
// debug mode (a schema mismatch, an audit-write failure).
func (l *Logger) Warnf(format string, args ...any) {
	log.Printf("[jsonremedy] WARN: "+format, args...)
}
