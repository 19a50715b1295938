package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// The shop writes one dated file per level under LOG_DIR ("logs" when
// unset). All helpers are nil-safe, so code under test runs without
// InitLogger.
var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

func openLevelLog(dir, level, day string) (*log.Logger, error) {
	file, err := os.OpenFile(
		filepath.Join(dir, fmt.Sprintf("kurisushop-%s-%s.log", level, day)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s log file: %v", level, err)
	}
	return log.New(file, strings.ToUpper(level)+": ", log.Ldate|log.Ltime|log.Lshortfile), nil
}

// InitLogger initializes the level loggers.
func InitLogger() error {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %v", dir, err)
	}

	day := time.Now().Format("2006-01-02")

	var err error
	if InfoLogger, err = openLevelLog(dir, "info", day); err != nil {
		return err
	}
	if ErrorLogger, err = openLevelLog(dir, "error", day); err != nil {
		return err
	}
	if DebugLogger, err = openLevelLog(dir, "debug", day); err != nil {
		return err
	}
	return nil
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	if InfoLogger != nil {
		InfoLogger.Printf(format, v...)
	}
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(format, v...)
	}
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	if DebugLogger != nil {
		DebugLogger.Printf(format, v...)
	}
}

// LogRequest logs one handled request
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	LogInfo("%s %s from %s - %d in %v", method, path, ip, status, duration)
}

// LogErrorWithStack logs an error together with a stack trace
func LogErrorWithStack(err error, stack []byte) {
	LogError("%v\nstack:\n%s", err, stack)
}
