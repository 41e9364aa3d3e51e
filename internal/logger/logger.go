// Package logger настраивает общий логгер сервиса
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log общий логгер сервиса
var Log = logrus.New()

// Init настраивает уровень и формат логирования.
// Неизвестный уровень не является ошибкой: используется info.
func Init(level string) {
	InitWithOutput(level, os.Stdout)
}

// InitWithOutput настраивает логгер с заданным выводом
func InitWithOutput(level string, out io.Writer) {
	Log.SetOutput(out)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'", level)
		parsedLevel = logrus.InfoLevel
	}
	Log.SetLevel(parsedLevel)
}
