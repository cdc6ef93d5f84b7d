package logger

// Level is a log level.
type Level int

// Log levels.
const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

func (l Level) tag() string {
	switch l {
	case Debug:
		return "DEB"

	case Info:
		return "INF"

	case Warn:
		return "WAR"

	case Error:
		return "ERR"
	}
	return "???"
}
