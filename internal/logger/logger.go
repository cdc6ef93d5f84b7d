// Package logger contains a logger implementation.
package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gookit/color"
)

// Logger is a log handler.
type Logger struct {
	Level        Level
	Destinations []Destination
	Structured   bool
	File         string
	SysLogPrefix string

	timeNow func() time.Time
	stdout  io.Writer

	destinations []destination
	mutex        sync.Mutex
}

// Initialize initializes a Logger.
func (l *Logger) Initialize() error {
	if l.Level == 0 {
		l.Level = Info
	}
	if l.timeNow == nil {
		l.timeNow = time.Now
	}
	if l.stdout == nil {
		l.stdout = os.Stdout
	}

	for _, destType := range l.Destinations {
		switch destType {
		case DestinationStdout:
			l.destinations = append(l.destinations, newDestinationStdout(l.stdout, l.Structured))

		case DestinationFile:
			dest, err := newDestinationFile(l.File, l.Structured)
			if err != nil {
				l.Close()
				return err
			}
			l.destinations = append(l.destinations, dest)

		case DestinationSyslog:
			dest, err := newDestinationSyslog(l.SysLogPrefix, l.Structured)
			if err != nil {
				l.Close()
				return err
			}
			l.destinations = append(l.destinations, dest)

		default:
			l.Close()
			return fmt.Errorf("invalid log destination: %v", destType)
		}
	}

	return nil
}

// Close closes a log handler.
func (l *Logger) Close() {
	for _, dest := range l.destinations {
		dest.close()
	}
	l.destinations = nil
}

func writePlainTime(buf *bytes.Buffer, t time.Time, useColor bool) {
	s := t.Format("2006/01/02 15:04:05 ")

	if useColor {
		buf.WriteString(color.RenderString(color.Gray.Code(), s))
	} else {
		buf.WriteString(s)
	}
}

func writeLevel(buf *bytes.Buffer, level Level, useColor bool) {
	tag := level.tag()

	if useColor {
		switch level {
		case Debug:
			tag = color.RenderString(color.Debug.Code(), tag)

		case Info:
			tag = color.RenderString(color.Green.Code(), tag)

		case Warn:
			tag = color.RenderString(color.Warn.Code(), tag)

		case Error:
			tag = color.RenderString(color.Error.Code(), tag)
		}
	}

	buf.WriteString(tag)
	buf.WriteByte(' ')
}

func writePlain(buf *bytes.Buffer, t time.Time, level Level, format string, args []any, useColor bool) {
	writePlainTime(buf, t, useColor)
	writeLevel(buf, level, useColor)
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
}

func writeStructured(buf *bytes.Buffer, t time.Time, level Level, format string, args []any) {
	buf.WriteString(`{"timestamp":`)
	ts, _ := json.Marshal(t.Format(time.RFC3339Nano))
	buf.Write(ts)
	buf.WriteString(`,"level":"`)
	buf.WriteString(level.tag())
	buf.WriteString(`","message":`)
	msg, _ := json.Marshal(fmt.Sprintf(format, args...))
	buf.Write(msg)
	buf.WriteString("}\n")
}

// Log writes a log entry.
func (l *Logger) Log(level Level, format string, args ...any) {
	if level < l.Level {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	t := l.timeNow()

	for _, dest := range l.destinations {
		dest.log(t, level, format, args...)
	}
}
