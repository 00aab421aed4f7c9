// Package logging points the standard logger at stdout and, when configured,
// a size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/sangkips/barbershop-api/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the standard logger and returns the writer it uses.
// The returned closer flushes the rotating file and is a no-op without one.
func Setup(cfg *config.LogConfig) (io.Writer, func() error) {
	var w io.Writer = os.Stdout
	closer := func() error { return nil }

	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w = io.MultiWriter(os.Stdout, rotating)
		closer = rotating.Close
	}

	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return w, closer
}
