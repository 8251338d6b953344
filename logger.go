package headers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"time"
)

// LoggerEnabled indicates whether to enable the logger.
//
// It's called "logger_enabled" in the config file.
var LoggerEnabled = false

// LoggerLowestLevel is the lowest level of the logger. Messages below it are
// dropped.
//
// It's called "logger_lowest_level" in the config file.
var LoggerLowestLevel = LoggerLevelInfo

// LoggerFormat is the format of the output content of the logger. When the
// executed format ends with '}', it is treated as JSON and the message and the
// extra fields are appended as JSON members.
//
// It's called "logger_format" in the config file.
var LoggerFormat = `{"app_name":"headers","time":"{{.time_rfc3339}}",` +
	`"level":"{{.level}}","file":"{{.short_file}}","line":{{.line}}}`

// LoggerOutput is the output of the logger.
var LoggerOutput = io.Writer(os.Stderr)

// LoggerLevel is the level of the logger.
type LoggerLevel uint8

// The logger levels.
const (
	LoggerLevelDebug LoggerLevel = iota
	LoggerLevelInfo
	LoggerLevelWarn
	LoggerLevelError
	LoggerLevelOff
)

// String returns the string value of the ll.
func (ll LoggerLevel) String() string {
	switch ll {
	case LoggerLevelDebug:
		return "debug"
	case LoggerLevelInfo:
		return "info"
	case LoggerLevelWarn:
		return "warn"
	case LoggerLevelError:
		return "error"
	}

	return "off"
}

// parseLoggerLevel parses the s into a `LoggerLevel`.
func parseLoggerLevel(s string) (LoggerLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LoggerLevelDebug, nil
	case "info":
		return LoggerLevelInfo, nil
	case "warn":
		return LoggerLevelWarn, nil
	case "error":
		return LoggerLevelError, nil
	case "off":
		return LoggerLevelOff, nil
	}

	return LoggerLevelOff, fmt.Errorf("headers: unknown logger level %q", s)
}

// logger is a template-driven line logger.
type logger struct {
	mutex    *sync.Mutex
	format   string
	template *template.Template
}

// theLogger is the singleton of the `logger`.
var theLogger = &logger{
	mutex: &sync.Mutex{},
}

// DEBUG logs the msg at the debug level with the optional extras.
func DEBUG(msg string, extras ...map[string]interface{}) {
	theLogger.log(LoggerLevelDebug, msg, extras...)
}

// INFO logs the msg at the info level with the optional extras.
func INFO(msg string, extras ...map[string]interface{}) {
	theLogger.log(LoggerLevelInfo, msg, extras...)
}

// WARN logs the msg at the warn level with the optional extras.
func WARN(msg string, extras ...map[string]interface{}) {
	theLogger.log(LoggerLevelWarn, msg, extras...)
}

// ERROR logs the msg at the error level with the optional extras.
func ERROR(msg string, extras ...map[string]interface{}) {
	theLogger.log(LoggerLevelError, msg, extras...)
}

// log logs the msg at the level with the optional extras.
func (l *logger) log(
	level LoggerLevel,
	msg string,
	extras ...map[string]interface{},
) {
	if !LoggerEnabled || level < LoggerLowestLevel ||
		level == LoggerLevelOff {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.template == nil || l.format != LoggerFormat {
		t, err := template.New("logger").Parse(LoggerFormat)
		if err != nil {
			return
		}

		l.format = LoggerFormat
		l.template = t
	}

	_, file, line, _ := runtime.Caller(2)

	values := map[string]interface{}{
		"time_rfc3339": time.Now().UTC().Format(time.RFC3339),
		"level":        level.String(),
		"short_file":   path.Base(file),
		"long_file":    file,
		"line":         strconv.Itoa(line),
	}

	buf := &bytes.Buffer{}
	if err := l.template.Execute(buf, values); err != nil {
		return
	}

	fields := map[string]interface{}{}
	for _, extra := range extras {
		for k, v := range extra {
			fields[k] = v
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	if i := buf.Len() - 1; i >= 0 && buf.Bytes()[i] == '}' { // JSON
		buf.Truncate(i)
		if i > 0 && buf.Bytes()[i-1] != '{' {
			buf.WriteByte(',')
		}

		buf.WriteString(`"message":`)
		mb, _ := json.Marshal(msg)
		buf.Write(mb)
		for _, k := range keys {
			kb, _ := json.Marshal(k)
			vb, err := json.Marshal(fields[k])
			if err != nil {
				vb, _ = json.Marshal(fmt.Sprint(fields[k]))
			}

			buf.WriteByte(',')
			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}

		buf.WriteByte('}')
	} else { // Text
		buf.WriteByte(' ')
		buf.WriteString(msg)
		for _, k := range keys {
			fmt.Fprintf(buf, " %s=%v", k, fields[k])
		}
	}

	buf.WriteByte('\n')

	LoggerOutput.Write(buf.Bytes())
}
