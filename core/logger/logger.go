package logger

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var current atomic.Pointer[logrus.Entry]

func init() {
	current.Store(New("development", os.Stdout))
}

// New builds a logrus entry: JSON at info level in production, plain text at debug otherwise.
func New(env string, out io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(out)
	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
		log.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(log)
}

func Setup(env string) {
	current.Store(New(env, os.Stdout))
}

// Use swaps the process logger, mostly for tests capturing output.
func Use(entry *logrus.Entry) {
	current.Store(entry)
}

func L() *logrus.Entry {
	return current.Load()
}

func Debug(msg string, args ...any) {
	with(args).Debug(msg)
}

func Info(msg string, args ...any) {
	with(args).Info(msg)
}

func Warn(msg string, args ...any) {
	with(args).Warn(msg)
}

func Error(msg string, args ...any) {
	with(args).Error(msg)
}

// with turns key/value pairs into logrus fields. A lone error (logger.Error("X:Y", err))
// becomes the error field.
func with(args []any) *logrus.Entry {
	entry := L()
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return entry.WithError(err)
		}
		return entry.WithField("detail", args[0])
	}
	if len(args) == 0 {
		return entry
	}
	fields := make(logrus.Fields, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			fields["detail"] = args[i]
			break
		}
		if err, ok := args[i+1].(error); ok {
			fields[key] = err.Error()
			continue
		}
		fields[key] = args[i+1]
	}
	return entry.WithFields(fields)
}
