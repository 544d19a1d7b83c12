package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. It is usable before Init so that
// packages under test do not need any setup.
var Log = logrus.New()

// Init configures the shared logger for production use.
func Init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetLevel(logrus.InfoLevel)
}
