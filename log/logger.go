package log

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

func NewLevel(l string) (Level, error) {
	for level, name := range levelNames {
		if name == strings.ToLower(l) {
			return level, nil
		}
	}
	return LevelTrace, errors.Errorf("invalid log level %q", l)
}

func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		panic("invalid level")
	}
	return name
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelTrace:
		return logrus.TraceLevel
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.PanicLevel
	}
}

// Logger logs a message with an even number of key/value field arguments.
type Logger interface {
	Trace(string, ...interface{})
	Debug(string, ...interface{})
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Fatal(string, ...interface{})
	Sub(...interface{}) Logger
}

var (
	currLevel = LevelInfo
	backend   = logrus.New()
	root      = &logrusLogger{entry: logrus.NewEntry(backend)}
)

func SetLevel(level Level) {
	currLevel = level
	backend.SetLevel(level.logrus())
}

func SetOutput(w io.Writer) {
	backend.SetOutput(w)
}

// SetJSON switches the root backend between logrus' JSON and text formatters.
func SetJSON(enabled bool) {
	if enabled {
		backend.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	backend.SetFormatter(&logrus.TextFormatter{})
}

func WithModule(name string) Logger {
	return root.Sub("module", name)
}

func init() {
	// set log level to trace by default in test
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLevel(LevelTrace)
	}
}
