// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"tsmit_os/internal/infrastructure/config"
)

const (
	ServiceName     = "tsmit-os"
	timestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

// Configure applies opts to the standard logger and returns it. An unknown
// level falls back to info.
func Configure(opts config.LogOptions, out io.Writer) *logrus.Logger {
	l := logrus.StandardLogger()
	apply(l, opts, out)
	return l
}

// New builds a standalone logger with the same settings as Configure.
func New(opts config.LogOptions, out io.Writer) *logrus.Logger {
	l := logrus.New()
	apply(l, opts, out)
	return l
}

func apply(l *logrus.Logger, opts config.LogOptions, out io.Writer) {
	if strings.EqualFold(opts.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "time",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		})
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if out == nil {
		out = os.Stdout
	}
	l.SetOutput(out)

	l.ReplaceHooks(make(logrus.LevelHooks))
	l.AddHook(serviceHook{})
}

// serviceHook stamps every entry with the service name.
type serviceHook struct{}

func (serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = ServiceName
	}
	return nil
}
