// Package logger provides diagnostic reporting for bigr-utils commands.
//
// Commands and the sample-sheet engine never write to the console directly;
// they report through the Reporter interface so tests can swap in a silent
// implementation and capture output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level identifies the severity of a reported message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel converts a level name to a Level. Empty or unknown names
// default to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Reporter receives diagnostic messages from commands and the engine.
type Reporter interface {
	Report(level Level, format string, args ...interface{})
}

// Console is a level-filtered Reporter writing to an io.Writer.
// It is safe for concurrent use. Color output is enabled automatically
// when the writer is a TTY and NO_COLOR is not set.
type Console struct {
	writer   io.Writer
	minLevel Level
	mutex    sync.Mutex
	colored  bool
}

// NewConsole creates a Console reporting to writer. Messages below minLevel
// are discarded. A nil writer discards everything.
func NewConsole(writer io.Writer, minLevel Level) *Console {
	return &Console{
		writer:   writer,
		minLevel: minLevel,
		colored:  writerIsTerminal(writer),
	}
}

// writerIsTerminal reports whether writer is a TTY that supports colors.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Report writes a formatted message if its level passes the filter.
func (c *Console) Report(level Level, format string, args ...interface{}) {
	if c == nil || c.writer == nil || level < c.minLevel {
		return
	}

	message := fmt.Sprintf(format, args...)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.colored {
		fmt.Fprintf(c.writer, "%s %s\n", c.levelTag(level), message)
		return
	}
	fmt.Fprintf(c.writer, "[%s] %s\n", level, message)
}

// levelTag returns the colorized level prefix for terminal output.
func (c *Console) levelTag(level Level) string {
	switch level {
	case LevelDebug:
		return color.New(color.FgHiBlack).Sprintf("[%s]", level)
	case LevelWarn:
		return color.New(color.FgYellow).Sprintf("[%s]", level)
	case LevelError:
		return color.New(color.FgRed).Sprintf("[%s]", level)
	default:
		return color.New(color.FgGreen).Sprintf("[%s]", level)
	}
}

// Nop is a Reporter that discards every message.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(Level, string, ...interface{}) {}
