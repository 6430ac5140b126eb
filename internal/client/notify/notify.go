// Package notify keeps the user-facing notifications raised by commands.
// Every notification is also written to the log.
package notify

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/logging"
	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Notification struct {
	ID        string
	Level     Level
	Message   string
	Timestamp time.Time
}

type Center struct {
	log logging.Logger
	now func() time.Time

	mu    sync.Mutex
	items []Notification
}

func NewCenter(log logging.Logger) *Center {
	if log == nil {
		log = logging.Nop()
	}
	return &Center{log: log, now: time.Now}
}

// Add appends a notification and returns it.
func (c *Center) Add(ctx context.Context, level Level, msg string) Notification {
	n := Notification{ID: uuid.NewString(), Level: level, Message: msg, Timestamp: c.now().UTC()}

	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()

	switch level {
	case LevelError:
		c.log.Error(ctx, msg, "notification_id", n.ID)
	case LevelWarning:
		c.log.Warn(ctx, msg, "notification_id", n.ID)
	default:
		c.log.Info(ctx, msg, "notification_id", n.ID, "level", level)
	}
	return n
}

func (c *Center) Success(ctx context.Context, msg string) Notification {
	return c.Add(ctx, LevelSuccess, msg)
}

func (c *Center) Error(ctx context.Context, msg string) Notification {
	return c.Add(ctx, LevelError, msg)
}

// Remove drops the notification with id; unknown ids are ignored.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.DeleteFunc(c.items, func(n Notification) bool { return n.ID == id })
}

func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// List returns the notifications oldest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}
