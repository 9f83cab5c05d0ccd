package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "app")

// setupLogging points the standard logrus logger at path. The terminal
// belongs to the dashboard, so when the file cannot be opened logs are
// discarded and the error returned for the caller to report after exit.
func setupLogging(path string, level logrus.Level) (func(), error) {
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logrus.SetOutput(io.Discard)
		return func() {}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return func() {}, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return func() {
		logrus.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}
