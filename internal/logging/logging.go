package logging

import (
	"io"
	"seodash/internal/config"
	"strings"

	"github.com/charmbracelet/log"
)

// New builds the process logger. Unknown levels fall back to warn so a bad
// setting never silences errors.
func New(cfg config.LogConfig, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = log.WarnLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "seodash",
	})
	if cfg.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

func Discard() *log.Logger {
	return log.New(io.Discard)
}
