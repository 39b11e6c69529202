package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// setupLogging points the standard logrus logger at the configured file. The
// terminal belongs to the editor, so without a file everything is discarded.
// The returned function closes the file.
func setupLogging(cfg LogConfig) (func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	if cfg.File == "" {
		logrus.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file %s", cfg.File)
	}
	logrus.SetOutput(f)
	return f.Close, nil
}
