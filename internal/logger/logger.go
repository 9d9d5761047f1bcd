package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var (
	ErrLoggerInvalidLogLevel  = errors.New("invalid log level")
	ErrLoggerInvalidLogFormat = errors.New("invalid log format")
)

type options struct {
	w       io.Writer
	service string
}

func WithWriter(w io.Writer) func(*options) {
	return func(o *options) {
		o.w = w
	}
}

// WithService adds a service attribute to every record.
func WithService(service string) func(*options) {
	return func(o *options) {
		o.service = service
	}
}

// NewLogger returns a logger writing in the given format, one of json, text or tint.
func NewLogger(logLevel, logFormat string, opts ...func(*options)) (*slog.Logger, error) {
	o := &options{w: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	slogLevel, err := getSlogLevel(logLevel)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(logFormat) {
	case "json":
		handler = slog.NewJSONHandler(o.w, &slog.HandlerOptions{Level: slogLevel})
	case "text":
		handler = slog.NewTextHandler(o.w, &slog.HandlerOptions{Level: slogLevel})
	case "tint":
		handler = tint.NewHandler(o.w, &tint.Options{Level: slogLevel, TimeFormat: time.DateTime})
	default:
		return nil, errors.Join(ErrLoggerInvalidLogFormat, fmt.Errorf("log format: %s", logFormat))
	}

	logger := slog.New(handler)
	if o.service != "" {
		logger = logger.With(slog.String("service", o.service))
	}

	return logger, nil
}

func getSlogLevel(logLevel string) (slog.Level, error) {
	switch strings.ToUpper(logLevel) {
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	}

	return slog.LevelInfo, errors.Join(ErrLoggerInvalidLogLevel, fmt.Errorf("log level: %s", logLevel))
}
