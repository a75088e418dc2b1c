package obs

import "github.com/rs/zerolog"

// ZerologLogger bridges Logger onto a zerolog.Logger, giving embedding
// applications structured, leveled output without the engine depending
// on any particular sink.
type ZerologLogger struct {
	L   zerolog.Logger
	Min Level
}

func (z ZerologLogger) Logf(level Level, format string, args ...interface{}) {
	if level < z.Min {
		return
	}
	var ev *zerolog.Event
	switch level {
	case Debug:
		ev = z.L.Debug()
	case Info:
		ev = z.L.Info()
	case Warn:
		ev = z.L.Warn()
	default:
		ev = z.L.Error()
	}
	ev.Msgf(format, args...)
}
