package gocrdt

import "github.com/sirupsen/logrus"

// Logger is the optional structured diagnostics sink this module's CRDTs
// accept for two observable-but-non-fatal events: GCounter count saturation,
// and a deleted-flag or value disagreement detected immediately before it
// is turned into a ConflictingHistory error. The core stays pure and
// side-effect free on every other path; the zero Logger is a safe no-op, so
// consumers who never configure one pay nothing.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger wraps l for use as a CRDT diagnostics sink.
func NewLogger(l *logrus.Logger) Logger {
	if l == nil {
		return Logger{}
	}
	return Logger{entry: logrus.NewEntry(l)}
}

func (l Logger) warnf(format string, args ...any) {
	if l.entry == nil {
		return
	}
	l.entry.Warnf(format, args...)
}

func (l Logger) debugf(format string, args ...any) {
	if l.entry == nil {
		return
	}
	l.entry.Debugf(format, args...)
}
