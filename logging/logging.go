/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/PivotLLM/Preceptor/global"
)

// levelRank orders log levels for threshold filtering.
var levelRank = map[string]int{
	global.LogLevelDebug: 0,
	global.LogLevelInfo:  1,
	global.LogLevelWarn:  2,
	global.LogLevelError: 3,
	global.LogLevelFatal: 4,
}

// Logger writes timestamped, level-tagged lines to a file. Nothing is ever
// written to stdout; the MCP transport owns that stream.
type Logger struct {
	logger  *log.Logger
	level   string
	logFile *os.File
}

// New creates a logger that appends to the specified file, creating the
// parent directory if needed.
func New(logPath string) (*Logger, error) {
	logPath, err := global.ExpandHomePath(logPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	logger := log.New(logFile, "", 0) // No default prefix/flags since we format ourselves
	return &Logger{
		logger:  logger,
		level:   global.LogLevelInfo,
		logFile: logFile,
	}, nil
}

// Sync flushes any buffered log data to disk
func (l *Logger) Sync() error {
	if l.logFile != nil {
		return l.logFile.Sync()
	}
	return nil
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.logFile != nil {
		// Flush before closing
		_ = l.logFile.Sync()
		return l.logFile.Close()
	}
	return nil
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level string) {
	l.level = level
}

// shouldLog determines if a message should be logged based on the current level
func (l *Logger) shouldLog(level string) bool {
	currentLevel, exists := levelRank[l.level]
	if !exists {
		currentLevel = levelRank[global.LogLevelInfo]
	}

	messageLevel, exists := levelRank[level]
	if !exists {
		messageLevel = levelRank[global.LogLevelInfo]
	}

	return messageLevel >= currentLevel
}

// formatMessage formats a log message with the required format
func (l *Logger) formatMessage(level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	pid := os.Getpid()
	return fmt.Sprintf("%s [%s] [%d] %s", timestamp, level, pid, message)
}

// log performs the actual logging
func (l *Logger) log(level, message string) {
	if l.shouldLog(level) {
		formatted := l.formatMessage(level, message)
		l.logger.Println(formatted)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(message string) {
	l.log(global.LogLevelDebug, message)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(message string) {
	l.log(global.LogLevelInfo, message)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(message string) {
	l.log(global.LogLevelWarn, message)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(message string) {
	l.log(global.LogLevelError, message)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string) {
	l.log(global.LogLevelFatal, message)
	_ = l.Close() // Ensure log is flushed before exit
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Fatal(fmt.Sprintf(format, args...))
}
