package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// LogConfig controls the level and the optional rotating log file. Quiet
// keeps logs off the terminal; they still reach File when it is set.
type LogConfig struct {
	Level string
	File  string
	Quiet bool
}

func InitLogger(cfgs ...LogConfig) {
	var cfg LogConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	var infoOut io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr
	if cfg.Quiet {
		infoOut, errOut = io.Discard, io.Discard
	}
	if cfg.File != "" {
		rot := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		infoOut = io.MultiWriter(infoOut, rot)
		errOut = io.MultiWriter(errOut, rot)
	}

	InfoLogger.SetOutput(infoOut)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(errOut)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	InfoLogger.SetLevel(level)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

// Silence routes both loggers to io.Discard. Tests call it.
func Silence() {
	InfoLogger.SetOutput(io.Discard)
	ErrorLogger.SetOutput(io.Discard)
}
