package logger

import (
	"bytes"
	"io"
	"time"
)

type destinationSysLog struct {
	syslog     io.WriteCloser
	structured bool
	buf        bytes.Buffer
}

func newDestinationSyslog(prefix string, structured bool) (destination, error) {
	syslog, err := newSysLog(prefix)
	if err != nil {
		return nil, err
	}

	return &destinationSysLog{
		syslog:     syslog,
		structured: structured,
	}, nil
}

func (d *destinationSysLog) log(t time.Time, level Level, format string, args ...any) {
	d.buf.Reset()

	if d.structured {
		writeStructured(&d.buf, t, level, format, args)
	} else {
		writePlain(&d.buf, t, level, format, args, false)
	}

	d.syslog.Write(d.buf.Bytes()) //nolint:errcheck
}

func (d *destinationSysLog) close() {
	d.syslog.Close()
}
