package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/dockbash/internal/utils/flags"
)

const (
	logLevelDebugStringConstant       = "debug"
	logLevelInfoStringConstant        = "info"
	logLevelWarnStringConstant        = "warn"
	logLevelErrorStringConstant       = "error"
	logFormatStructuredStringConstant = "structured"
	logFormatConsoleStringConstant    = "console"
	invalidLogLevelTemplateConstant   = "log level: %w"
	invalidLogFormatTemplateConstant  = "log format: %w"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LogLevels lists the accepted log level names from most to least verbose.
var LogLevels = []string{logLevelDebugStringConstant, logLevelInfoStringConstant, logLevelWarnStringConstant, logLevelErrorStringConstant}

// LogFormats lists the accepted log format names.
var LogFormats = []string{logFormatStructuredStringConstant, logFormatConsoleStringConstant}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger writing to standard error.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithSink(requestedLogLevel, requestedLogFormat, zapcore.Lock(os.Stderr))
}

// CreateLoggerWithSink produces a zap.Logger writing to sink. Level and format
// names are matched case-insensitively.
//
// The structured format writes JSON lines with caller and error stack traces.
// The console format writes tab-separated lines with ISO8601 timestamps and
// capitalised levels, and omits callers and stack traces.
func (factory *LoggerFactory) CreateLoggerWithSink(requestedLogLevel LogLevel, requestedLogFormat LogFormat, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	levelName, levelError := flags.ParseChoice(string(requestedLogLevel), "", LogLevels)
	if levelError != nil {
		return nil, fmt.Errorf(invalidLogLevelTemplateConstant, levelError)
	}
	formatName, formatError := flags.ParseChoice(string(requestedLogFormat), "", LogFormats)
	if formatError != nil {
		return nil, fmt.Errorf(invalidLogFormatTemplateConstant, formatError)
	}

	enabledLevel := zap.NewAtomicLevelAt(logLevelMapping[LogLevel(levelName)])
	encoderConfiguration := zap.NewProductionEncoderConfig()
	options := []zap.Option{zap.ErrorOutput(sink)}

	var encoder zapcore.Encoder
	switch LogFormat(formatName) {
	case LogFormatConsole:
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfiguration)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfiguration)
		options = append(options, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return zap.New(zapcore.NewCore(encoder, sink, enabledLevel), options...), nil
}
