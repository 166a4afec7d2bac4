package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

func StringToLoglevel(l string) (logrus.Level, error) {
	switch strings.ToLower(l) {
	case strings.ToLower(logrus.FatalLevel.String()):
		return logrus.FatalLevel, nil
	case strings.ToLower(logrus.ErrorLevel.String()):
		return logrus.ErrorLevel, nil
	case strings.ToLower(logrus.WarnLevel.String()), "warn":
		return logrus.WarnLevel, nil
	case strings.ToLower(logrus.InfoLevel.String()):
		return logrus.InfoLevel, nil
	case strings.ToLower(logrus.DebugLevel.String()):
		return logrus.DebugLevel, nil
	case strings.ToLower(logrus.TraceLevel.String()):
		return logrus.TraceLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", l)
	}
}

func AvailableLogLevels() string {
	levels := make([]string, len(logrus.AllLevels))
	for i, l := range logrus.AllLevels {
		levels[i] = l.String()
	}
	return strings.Join(levels, ", ")
}

func LogFormatter(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &logrus.TextFormatter{}, nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("invalid format '%s', must be one of text, json", format)
	}
}

// CreateLogger creates a new logrus instance with the log level and
// formatter specified. Warnings and errors are written to errOut,
// everything else to out.
func CreateLogger(logLevel, logFormat string, out, errOut io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard) // the hooks below do the writing.

	if logLevel == "" {
		logLevel = "info"
	}
	lvl, err := StringToLoglevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s. Available levels are %s", logLevel, AvailableLogLevels())
	}
	logger.SetLevel(lvl)

	formatter, err := LogFormatter(logFormat)
	if err != nil {
		return nil, err
	}
	logger.SetFormatter(formatter)

	logger.AddHook(&writer.Hook{
		Writer: errOut,
		LogLevels: []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
			logrus.WarnLevel,
		},
	})
	logger.AddHook(&writer.Hook{
		Writer: out,
		LogLevels: []logrus.Level{
			logrus.InfoLevel,
			logrus.DebugLevel,
			logrus.TraceLevel,
		},
	})

	return logger, nil
}
