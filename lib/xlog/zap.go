package xlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ XLogger = (*xLogger)(nil)

type xLogger struct {
	logger atomic.Pointer[zap.Logger]
	level  *zap.AtomicLevel
}

func (l *xLogger) zap() *zap.Logger {
	return l.logger.Load()
}

func (l *xLogger) Named(name string) XLogger {
	child := &xLogger{level: l.level}
	child.logger.Store(l.logger.Load().Named(name))
	return child
}

func (l *xLogger) IncreaseLogLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

func (l *xLogger) Level() string {
	return l.level.Level().CapitalString()
}

func (l *xLogger) Sync() error {
	return l.logger.Load().Sync()
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Load().Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Load().Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Load().Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) Logf(lvl zapcore.Level, format string, args ...any) {
	l.logger.Load().Log(lvl, fmt.Sprintf(format, args...))
}

type loggerCfg struct {
	writerType  *LogOutWriterType
	writer      io.Writer
	encoderType *LogEncoderType
	lvlEncoder  zapcore.LevelEncoder
	tsEncoder   zapcore.TimeEncoder
	level       *zapcore.Level
}

func (cfg *loggerCfg) writeSyncer() zapcore.WriteSyncer {
	if cfg.writer != nil {
		return getOutWriter(cfg.writer)
	}
	if cfg.writerType != nil {
		return getOutWriterByType(*cfg.writerType)
	}
	return getOutWriterByType(StdOut)
}

type XLoggerOption func(*loggerCfg) error

func NewXLogger(opts ...XLoggerOption) XLogger {
	cfg := &loggerCfg{}
	for _, o := range opts {
		if err := o(cfg); err != nil {
			panic(err)
		}
	}

	lvl := getLogLevelOrDefault(os.Getenv("XLOG_LVL"))
	if cfg.level != nil {
		lvl = *cfg.level
	}
	enc := JSON
	if cfg.encoderType != nil {
		enc = *cfg.encoderType
	}
	if cfg.lvlEncoder == nil {
		cfg.lvlEncoder = zapcore.CapitalLevelEncoder
	}
	if cfg.tsEncoder == nil {
		cfg.tsEncoder = zapcore.ISO8601TimeEncoder
	}

	atomicLvl := zap.NewAtomicLevelAt(lvl)
	core := (&consoleCore{}).build(atomicLvl, enc, cfg.writeSyncer(), cfg.lvlEncoder, cfg.tsEncoder)
	xl := &xLogger{level: &atomicLvl}
	// Disable zap logger error stack.
	xl.logger.Store(zap.New(
		core,
		zap.AddCallerSkip(1), // Use caller filename as service
		zap.AddCaller(),
	))
	return xl
}

func WithXLoggerWriter(w LogOutWriterType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if w >= _writerMax {
			return fmt.Errorf("[XLogger] unknown writer type %d", w)
		}
		cfg.writerType = &w
		return nil
	}
}

// WithXLoggerOutput redirects the logger to an arbitrary writer,
// it takes priority over WithXLoggerWriter.
func WithXLoggerOutput(w io.Writer) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if w == nil {
			return fmt.Errorf("[XLogger] nil output writer")
		}
		cfg.writer = w
		return nil
	}
}

func WithXLoggerEncoder(logEnc LogEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if logEnc >= _encMax {
			return fmt.Errorf("[XLogger] unknown encoder type %d", logEnc)
		}
		cfg.encoderType = &logEnc
		return nil
	}
}

func WithXLoggerLevel(lvl LogLevel) XLoggerOption {
	return func(cfg *loggerCfg) error {
		_lvl := lvl.zapLevel()
		cfg.level = &_lvl
		return nil
	}
}

func WithXLoggerLevelEncoder(lvlEnc zapcore.LevelEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if lvlEnc == nil {
			lvlEnc = zapcore.CapitalColorLevelEncoder
		}
		cfg.lvlEncoder = lvlEnc
		return nil
	}
}

func WithXLoggerTimeEncoder(tsEnc zapcore.TimeEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if tsEnc == nil {
			tsEnc = zapcore.ISO8601TimeEncoder
		}
		cfg.tsEncoder = tsEnc
		return nil
	}
}

// ParseLogLevel accepts the level names case-insensitively,
// unknown names fall back to DEBUG.
func ParseLogLevel(level string) LogLevel {
	return LogLevel(getLogLevelOrDefault(level).CapitalString())
}

// ParseLogEncoder accepts "json" and "text"/"plain".
func ParseLogEncoder(enc string) LogEncoderType {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "text", "plain", "plaintext", "console":
		return PlainText
	default:
	}
	return JSON
}

func getLogLevelOrDefault(level string) zapcore.Level {
	if len(strings.TrimSpace(level)) == 0 {
		return zapcore.DebugLevel
	}

	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LogLevelInfo.String():
		return zapcore.InfoLevel
	case LogLevelWarn.String():
		return zapcore.WarnLevel
	case LogLevelError.String():
		return zapcore.ErrorLevel
	case LogLevelDebug.String():
		fallthrough
	default:
	}
	return zapcore.DebugLevel
}
