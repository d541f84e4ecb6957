// Package logger holds the process-wide structured logger. Library code logs
// through logger.Log; applications call Init once at startup to choose the
// output format.
package logger

import "go.uber.org/zap"

// Log is safe to use before Init; it discards everything until then.
var Log = zap.NewNop()

// Init replaces the no-op logger. Debug mode uses the human-readable
// development encoder, otherwise JSON production output.
func Init(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return
	}
	Log = l
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = Log.Sync()
}
