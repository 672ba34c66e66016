package utils

import (
	"context"
	"os"

	"famwealth/src/config"

	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey = contextKey("logger")

// NewLogger initializes a single logger that can log at multiple levels.
func NewLogger(logLevel logrus.Level, logToFile bool, filePath string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logLevel)

	if logToFile {
		file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			logger.Fatal("Could not open log file:", err)
		}
		logger.SetOutput(file)
	} else {
		logger.SetOutput(os.Stdout)
	}

	logger.SetFormatter(&logrus.JSONFormatter{})

	return logger
}

// NewLoggerFromConfig builds the service logger from the logging section.
// Unknown levels fall back to info.
func NewLoggerFromConfig(cfg config.LoggingConfig) *logrus.Logger {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	return NewLogger(level, cfg.ToFile, cfg.FilePath)
}

// WithLogger stores a logger entry, usually carrying request fields, in ctx.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func LoggerFromContext(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(loggerKey).(*logrus.Entry)
	if !ok {
		defaultLogger := logrus.New()
		defaultLogger.SetLevel(logrus.InfoLevel)
		defaultLogger.SetFormatter(&logrus.TextFormatter{})
		return logrus.NewEntry(defaultLogger)
	}
	return logger
}
