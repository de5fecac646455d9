// Package notify defines the notification levels surfaced as toasts.
package notify

import (
	"fmt"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// New builds a notification stamped with the current time.
func New(level Level, format string, args ...any) Notification {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return Notification{Level: level, Message: msg, CreatedAt: time.Now()}
}
