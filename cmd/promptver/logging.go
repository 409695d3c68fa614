package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type logConfig struct {
	WithCaller bool
	Level      string
	LogFormat  string
	LogFile    string
}

// logFormat picks the console format when none is configured: text on a
// terminal, json everywhere else.
func logFormat(format string, fd uintptr) string {
	if format != "" {
		return format
	}
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "text"
	}
	return "json"
}

// logWriter sends json or console lines to out, and plain console lines to
// a rotated logFile when one is set.
func logWriter(format string, out io.Writer, logFile string) (io.Writer, error) {
	var w io.Writer
	switch format {
	case "text":
		w = zerolog.ConsoleWriter{Out: out}
	case "json":
		w = out
	default:
		return nil, errors.Errorf("unknown log format %s", format)
	}

	if logFile == "" {
		return w, nil
	}
	return io.MultiWriter(
		w,
		zerolog.ConsoleWriter{
			NoColor: true,
			Out: &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
			},
		}), nil
}

func InitLogger(config *logConfig) error {
	w, err := logWriter(logFormat(config.LogFormat, os.Stderr.Fd()), os.Stderr, config.LogFile)
	if err != nil {
		return err
	}

	logger := zerolog.New(w).With().Timestamp()
	if config.WithCaller {
		logger = logger.Caller()
	}
	log.Logger = logger.Logger()

	if config.Level == "" {
		return nil
	}
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", config.Level)
	}
	zerolog.SetGlobalLevel(level)

	return nil
}
