package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"taproom/internal/config"
)

// New builds the application logger. LOG_LEVEL and LOG_FORMAT override the config values.
func New(cfg config.LoggingConfig) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput is New writing to out; the terminal frontend points it at a file.
func NewWithOutput(cfg config.LoggingConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()

	levelName := cfg.Level
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		levelName = env
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	format := strings.ToLower(cfg.Format)
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = strings.ToLower(env)
	}
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(out)
	return log
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
