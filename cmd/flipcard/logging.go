package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// setupLogging builds the process logger
// Terminal mode owns the screen, so logs go to a file; serve mode logs to stderr
func setupLogging(s Settings) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
	}

	if s.Mode == ModeServe {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), func() {}, nil
	}

	if s.LogFile == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), func() { f.Close() }, nil
}
