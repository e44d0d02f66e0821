package utils

import (
	"fmt"
	"gopkg.in/natefinch/lumberjack.v2"
	"log"
	"os"
	"path/filepath"
)

// SetupLogger sends the standard logger to a rotating file. An empty path logs to stderr.
func SetupLogger(logFilePath string) error {
	if logFilePath == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	dir := filepath.Dir(logFilePath)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
	})
	log.SetFlags(log.LstdFlags)

	return nil
}

func ConsoleAndLogPrintf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(message)
	log.Println(message)
}
