package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type RunLogger struct {
	file   *os.File
	logger *log.Logger
}

// NewRunLogger logs to out and, when logsDir is set, to a timestamped file
// under logsDir/<command>.
func NewRunLogger(out io.Writer, logsDir, command string) (*RunLogger, error) {
	if logsDir == "" {
		return &RunLogger{
			logger: log.New(out, "", log.Ldate|log.Ltime),
		}, nil
	}

	// Sanitize command name for file system
	sanitized := strings.ReplaceAll(strings.ToLower(command), " ", "_")

	commandDir := filepath.Join(logsDir, sanitized)
	if err := os.MkdirAll(commandDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(commandDir, fmt.Sprintf("%s_%s.log", sanitized, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	multiWrite := io.MultiWriter(out, file)
	logger := log.New(multiWrite, "", log.Ldate|log.Ltime|log.Lmicroseconds)

	return &RunLogger{
		file:   file,
		logger: logger,
	}, nil
}

func (rl *RunLogger) LogInfo(format string, v ...interface{}) {
	rl.log("INFO", format, v...)
}

func (rl *RunLogger) LogError(format string, v ...interface{}) {
	rl.log("ERROR", format, v...)
}

func (rl *RunLogger) LogDebug(format string, v ...interface{}) {
	rl.log("DEBUG", format, v...)
}

func (rl *RunLogger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	rl.logger.Printf("[%s] %s", level, message)
}

// Tee returns w, copying everything written to it into the log file when
// there is one, so printed reports are kept next to the log lines.
func (rl *RunLogger) Tee(w io.Writer) io.Writer {
	if rl.file == nil {
		return w
	}
	return io.MultiWriter(w, rl.file)
}

// Path returns the log file path, or "" when logging to out only.
func (rl *RunLogger) Path() string {
	if rl.file == nil {
		return ""
	}
	return rl.file.Name()
}

func (rl *RunLogger) Close() error {
	if rl.file == nil {
		return nil
	}
	return rl.file.Close()
}
