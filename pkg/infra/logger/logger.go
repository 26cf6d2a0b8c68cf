package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const fileBufferSize = 32 * 1024

type Options struct {
	// Level is any logrus level name. Debug forces debug regardless.
	Level string
	Debug bool
	// File, when set, receives every record asynchronously while the console
	// keeps a synchronous copy.
	File string
}

// NewLogger builds the process logger. The returned close func flushes the
// file writer and is safe to call when no file is configured.
func NewLogger(opts Options) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(parseLevel(opts.Level, opts.Debug))

	if opts.File == "" {
		logger.SetOutput(os.Stdout)
		return logger, func() {}, nil
	}

	logFile := filepath.Clean(opts.File)
	if err := os.MkdirAll(filepath.Dir(logFile), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	asyncWriter, err := NewAsyncFileWriter(logFile, fileBufferSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}

	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook(os.Stdout))

	return logger, asyncWriter.Close, nil
}

// NewDiscardLogger is used by tests and by components constructed without a
// logger.
func NewDiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func parseLevel(level string, debug bool) logrus.Level {
	if debug {
		return logrus.DebugLevel
	}
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
