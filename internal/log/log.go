package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the verbosity of debug output.
type Level int

const (
	Off Level = iota
	Basic
	Detailed
	Trace
	Wire
)

var (
	mu     sync.RWMutex
	level  Level     = Off
	output io.Writer = os.Stderr
)

// LevelFromInt clamps i to a known Level.
func LevelFromInt(i int) Level {
	switch {
	case i <= 0:
		return Off
	case i == 1:
		return Basic
	case i == 2:
		return Detailed
	case i == 3:
		return Trace
	default:
		return Wire
	}
}

func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	case Trace:
		return "trace"
	default:
		return "wire"
	}
}

// SetLevel sets the global debug level.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// GetLevel returns the current debug level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// Output returns the writer log lines go to.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

// RotatingFile returns a size-rotated writer appending to path.
func RotatingFile(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

// Debug writes a DEBUG line when the current level is at least l.
func Debug(l Level, format string, a ...any) {
	mu.RLock()
	current, w := level, output
	mu.RUnlock()
	if current >= l && l > Off {
		fmt.Fprintf(w, "DEBUG: "+format, a...)
	}
}

// Log writes format unconditionally.
func Log(format string, a ...any) {
	fmt.Fprintf(Output(), format, a...)
}
