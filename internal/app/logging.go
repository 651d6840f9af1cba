package app

import (
	"go.trai.ch/zerr"
)

// Log output formats.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// logConfigurer is implemented by loggers whose output can be tuned at runtime.
type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging selects the log format and verbosity.
// Loggers that cannot be configured are left unchanged.
func (a *App) ConfigureLogging(format string, verbose bool) error {
	if format != LogFormatPretty && format != LogFormatJSON {
		return zerr.With(zerr.New("unknown log format"), "format", format)
	}
	l, ok := a.logger.(logConfigurer)
	if !ok {
		return nil
	}
	l.SetJSON(format == LogFormatJSON)
	l.SetVerbose(verbose)
	return nil
}
