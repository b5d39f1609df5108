package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rafabene/backoffice/internal/domain/ports"
)

// SlogLogger implementa ports.Logger usando slog do stdlib
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger cria um logger em stdout; format "text" é o legível para desenvolvimento
func NewSlogLogger(level, format string) ports.Logger {
	return newSlogLogger(level, format, os.Stdout)
}

// NewSlogLoggerWithWriter cria um logger JSON sobre w (usado em testes)
func NewSlogLoggerWithWriter(level string, w io.Writer) ports.Logger {
	return newSlogLogger(level, "json", w)
}

func newSlogLogger(level, format string, w io.Writer) ports.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &SlogLogger{logger: slog.New(handler).With("service", "backoffice")}
}

// parseLevel aceita debug, info, warn e error; qualquer outro valor vira info
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) With(args ...any) ports.Logger {
	return &SlogLogger{
		logger: l.logger.With(args...),
	}
}
