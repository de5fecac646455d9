package tui

import (
	"time"

	"github.com/colonyops/docboard/internal/core/notify"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// ToastController owns the active toast stack: push, eviction, and TTL
// countdown.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification to the stack, evicting the oldest once more than
// defaultMaxToasts are active.
func (c *ToastController) Push(n notify.Notification) {
	c.toasts = append(c.toasts, toast{
		notification: n,
		remaining:    defaultToastTTL,
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and drops the expired
// ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the active toasts, oldest first.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
