package logx

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Fields carries structured key/value context for a log entry
type Fields map[string]interface{}

// Format selects the output encoding
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Logger is a leveled logger writing formatted entries to a single output
type Logger struct {
	mu     sync.Mutex
	level  Level
	format Format
	out    *os.File
}

// NewLogger creates a logger with the given minimum level and format
func NewLogger(level Level, format Format) *Logger {
	return &Logger{
		level:  level,
		format: format,
		out:    os.Stdout,
	}
}

// NewLoggerFromEnv builds a logger from LOG_LEVEL and LOG_FORMAT
func NewLoggerFromEnv() *Logger {
	format := FormatConsole
	if os.Getenv("LOG_FORMAT") == "json" {
		format = FormatJSON
	}
	return NewLogger(ParseLevel(os.Getenv("LOG_LEVEL")), format)
}

// SetLevel sets the minimum level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the output file
func (l *Logger) SetOutput(out *os.File) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
}

type entry struct {
	Time    string                 `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

func (l *Logger) log(level Level, msg string, fields Fields, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	e := entry{
		Time:    time.Now().Format("2006-01-02 15:04:05.000"),
		Level:   level.String(),
		Message: msg,
		Fields:  fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	switch l.format {
	case FormatJSON:
		b, marshalErr := json.Marshal(e)
		if marshalErr != nil {
			fmt.Fprintf(l.out, "%s [%s] %s\n", e.Time, e.Level, e.Message)
			break
		}
		fmt.Fprintln(l.out, string(b))
	default:
		line := fmt.Sprintf("%s [%-5s] %s", e.Time, e.Level, e.Message)
		for k, v := range fields {
			line += fmt.Sprintf(" %s=%v", k, v)
		}
		if err != nil {
			line += fmt.Sprintf(" error=%q", err.Error())
		}
		fmt.Fprintln(l.out, line)
	}

	if level == LevelFatal {
		os.Exit(1)
	}
}
