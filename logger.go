package hlc

import "github.com/rs/zerolog"

// Logger is a generic logger interface similar to BadgerDB's logger
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	Field(key string, value interface{}) Logger
	Err(err error) Logger
}

// NullLogger implements the Logger interface with no-op methods
type NullLogger struct{}

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debugf(format string, args ...interface{}) {}
func (l *NullLogger) Infof(format string, args ...interface{})  {}
func (l *NullLogger) Warnf(format string, args ...interface{})  {}
func (l *NullLogger) Errorf(format string, args ...interface{}) {}
func (l *NullLogger) Field(key string, value interface{}) Logger {
	return l
}
func (l *NullLogger) Err(err error) Logger {
	return l
}

// ZerologLogger implements the Logger interface using zerolog
type ZerologLogger struct {
	zl zerolog.Logger
}

func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

func (l *ZerologLogger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}
func (l *ZerologLogger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}
func (l *ZerologLogger) Warnf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}
func (l *ZerologLogger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}
func (l *ZerologLogger) Field(key string, value interface{}) Logger {
	return &ZerologLogger{
		zl: l.zl.With().Interface(key, value).Logger(),
	}
}
func (l *ZerologLogger) Err(err error) Logger {
	return &ZerologLogger{
		zl: l.zl.With().Err(err).Logger(),
	}
}
