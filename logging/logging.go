// Package logging configures the zerolog logger shared by every component
// The terminal owns stdout, so logs go to a file and only when debug is on
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	// FileName is the active log file inside the log directory
	FileName = "planetfall.log"

	// MaxSize triggers rotation at startup
	MaxSize = 10 * 1024 * 1024
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns the application logger and the file to close on exit
// With debug off the logger is disabled and the standard log package is discarded
func Setup(debug bool, dir string) (zerolog.Logger, io.Closer) {
	if !debug {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nopCloser{}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nopCloser{}
	}

	path := filepath.Join(dir, FileName)
	rotate(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nopCloser{}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)

	// Route stray standard log output into the same file
	log.SetFlags(0)
	log.SetOutput(logger)

	logger.Info().Msg("logging started")
	return logger, f
}

// rotate moves an oversized log aside, replacing the previous backup
func rotate(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= MaxSize {
		return
	}
	old := path + ".old"
	os.Remove(old)
	os.Rename(path, old)
}
