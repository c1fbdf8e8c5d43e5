package logger

import (
	"io"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process wide logger. It writes to stdout until Init is called.
var Log = logrus.New()

// Init points the logger, and gin's request log, at stdout plus a rotating
// file. An empty file disables the file sink.
func Init(level string, file string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var out io.Writer = os.Stdout
	if file != "" {
		if err := os.MkdirAll(path.Dir(file), 0o755); err != nil {
			Log.Warnf("Could not create log directory for %s: %s", file, err.Error())
		} else {
			out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
				Filename:   file,
				MaxSize:    500,
				MaxBackups: 3,
				MaxAge:     30,
				Compress:   true,
			})
		}
	}
	Log.SetOutput(out)
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out
}

// Discard silences the logger, used by tests.
func Discard() {
	Log.SetOutput(io.Discard)
}
