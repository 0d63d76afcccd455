package uci

import "github.com/sirupsen/logrus"

// uciLogger is the package-wide logger. Wire traces go out at Debug,
// contained decode failures at Warn, handler panics at Error.
var uciLogger = logrus.New()

// SetLogger routes the package's wire traces, decode warnings, and
// addin-load diagnostics into the caller's logrus instance. A nil logger
// is ignored.
func SetLogger(lg *logrus.Logger) {
	if lg != nil {
		uciLogger = lg
	}
}

func log() *logrus.Logger {
	return uciLogger
}
