package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

func Init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func ensure() {
	if InfoLogger == nil {
		Init()
	}
}

// formatKV renders trailing key-value pairs as "k=v" tokens.
func formatKV(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(kv); i += 2 {
		b.WriteByte(' ')
		if i+1 < len(kv) {
			fmt.Fprintf(&b, "%v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, "%v=?", kv[i])
		}
	}
	return b.String()
}

func Info(msg string, kv ...interface{}) {
	ensure()
	InfoLogger.Output(2, msg+formatKV(kv))
}

func Infof(format string, v ...interface{}) {
	ensure()
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(msg string, kv ...interface{}) {
	ensure()
	ErrorLogger.Output(2, msg+formatKV(kv))
}

func Errorf(format string, v ...interface{}) {
	ensure()
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(msg string, kv ...interface{}) {
	ensure()
	DebugLogger.Output(2, msg+formatKV(kv))
}

func Debugf(format string, v ...interface{}) {
	ensure()
	DebugLogger.Output(2, fmt.Sprintf(format, v...))
}

func Fatal(msg string) {
	ensure()
	ErrorLogger.Fatal(msg)
}

func Fatalf(format string, v ...interface{}) {
	ensure()
	ErrorLogger.Fatalf(format, v...)
}
