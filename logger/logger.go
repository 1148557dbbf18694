package logger

import (
	"os"

	"github.com/inburst/prhub/config"
	"github.com/sirupsen/logrus"
)

var sharedLogger = logrus.New()

func init() {
	sharedLogger.SetOutput(os.Stderr)
}

// InitializeLogger points the shared logger at the application log file. The
// terminal UI owns stdout, so nothing is written there once this succeeds.
func InitializeLogger() error {
	err := config.PrepApplicationCacheFolder()
	if err != nil {
		return err
	}

	logFilePath, err := config.GetLogFilePath()
	if err != nil {
		return err
	}

	// ensure file is available for writing
	f, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	sharedLogger.SetOutput(f)
	sharedLogger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("PRHUB_LOG_LEVEL")); err == nil {
		sharedLogger.SetLevel(lvl)
	}
	return nil
}

func Shared() *logrus.Logger {
	return sharedLogger
}
