package utils

import "go.uber.org/zap"

// NewLogger builds the process-wide logger for the rehabflow server and CLI.
// Debug mode gives human-readable development output for watching intake and
// pipeline activity; otherwise JSON production output at info level.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
