// Package logger exposes the loggers shared by the table layout packages.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ProgressLogger logs the main steps of the table layout at the Info level,
// and the details of each table at the Debug level.
var ProgressLogger = newLogger("tablelayout.progress", logrus.InfoLevel)

// WarningLogger emits a warning for each non fatal input problem, like
// unsupported CSS properties or invalid span attributes.
var WarningLogger = newLogger("tablelayout.warning", logrus.WarnLevel)

// nameHook adds the name of the logger to every entry.
type nameHook string

func (nameHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h nameHook) Fire(entry *logrus.Entry) error {
	entry.Data["logger"] = string(h)
	return nil
}

func newLogger(name string, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: level != logrus.InfoLevel})
	l.AddHook(nameHook(name))
	return l
}
