package log

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// logrusLogger carries its module fields on a logrus entry. Records are
// filtered against currLevel before any fields are built.
type logrusLogger struct {
	entry *logrus.Entry
}

var _ Logger = (*logrusLogger)(nil)

func (l *logrusLogger) Trace(msg string, fields ...interface{}) {
	l.log(LevelTrace, msg, fields)
}

func (l *logrusLogger) Debug(msg string, fields ...interface{}) {
	l.log(LevelDebug, msg, fields)
}

func (l *logrusLogger) Info(msg string, fields ...interface{}) {
	l.log(LevelInfo, msg, fields)
}

func (l *logrusLogger) Warn(msg string, fields ...interface{}) {
	l.log(LevelWarn, msg, fields)
}

func (l *logrusLogger) Error(msg string, fields ...interface{}) {
	l.log(LevelError, msg, fields)
}

// Fatal logs and exits the process.
func (l *logrusLogger) Fatal(msg string, fields ...interface{}) {
	l.with(fields).Fatal(msg)
}

func (l *logrusLogger) Sub(fields ...interface{}) Logger {
	return &logrusLogger{entry: l.with(fields)}
}

func (l *logrusLogger) log(level Level, msg string, fields []interface{}) {
	if level < currLevel {
		return
	}
	l.with(fields).Log(level.logrus(), msg)
}

func (l *logrusLogger) with(fields []interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(fieldsOf(fields))
}

// fieldsOf pairs up key/value tuples. Keys are strings or fmt.Stringers such
// as compression.Algorithm.
func fieldsOf(kv []interface{}) logrus.Fields {
	if len(kv)%2 != 0 {
		panic("must specify arguments as tuples")
	}
	out := make(logrus.Fields, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		var key string
		switch k := kv[i].(type) {
		case string:
			key = k
		case fmt.Stringer:
			key = k.String()
		default:
			panic(fmt.Sprintf("argument key %v of type %T is not a string", kv[i], kv[i]))
		}
		out[key] = kv[i+1]
	}
	return out
}
