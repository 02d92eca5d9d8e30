package ui

import (
	"sync"
	"time"

	"github.com/mwhitfield/clavier/internal/shared"
)

// ToastKind classifies a notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// ToastDuration is how long a toast stays up without explicit dismissal.
const ToastDuration = 5 * time.Second

// Toast is one ephemeral notification. IDs are generated so concurrent
// toasts with the same message never collide.
type Toast struct {
	ID      string
	Message string
	Kind    ToastKind
}

// Notifier holds the cross-cutting UI state every feature depends on: the
// active toast list and the single modal slot. It is a pure state container
// with no business logic and is safe for concurrent use.
type Notifier struct {
	onChange func()
	duration time.Duration

	mu     sync.Mutex
	toasts []Toast
	timers map[string]*time.Timer
	modal  Modal
}

// NewNotifier creates a Notifier. onChange, when non-nil, is invoked
// outside locks after every state change so a host can repaint.
func NewNotifier(onChange func()) *Notifier {
	return &Notifier{
		onChange: onChange,
		duration: ToastDuration,
		timers:   make(map[string]*time.Timer),
	}
}

// SetDuration overrides the auto-expiry duration for subsequent toasts.
func (n *Notifier) SetDuration(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.duration = d
}

// AddToast appends a notification and schedules its auto-removal. The
// generated id is returned so callers can dismiss early.
func (n *Notifier) AddToast(message string, kind ToastKind) string {
	id := shared.GenerateID()

	n.mu.Lock()
	n.toasts = append(n.toasts, Toast{ID: id, Message: message, Kind: kind})
	n.timers[id] = time.AfterFunc(n.duration, func() {
		n.RemoveToast(id)
	})
	n.mu.Unlock()

	n.notify()
	return id
}

// RemoveToast dismisses a toast early and cancels its expiry timer, so a
// later toast reusing the same message can never be removed by a stale
// timer. Unknown ids are ignored.
func (n *Notifier) RemoveToast(id string) {
	n.mu.Lock()
	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}

	removed := false
	for i, toast := range n.toasts {
		if toast.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			removed = true
			break
		}
	}
	n.mu.Unlock()

	if removed {
		n.notify()
	}
}

// Toasts returns a snapshot of the active notifications, oldest first.
func (n *Notifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// ShowModal installs content in the modal slot, replacing whatever was
// shown before. There is no stacking beyond one.
func (n *Notifier) ShowModal(m Modal) {
	n.mu.Lock()
	n.modal = m
	n.mu.Unlock()

	n.notify()
}

// CloseModal clears the modal slot.
func (n *Notifier) CloseModal() {
	n.mu.Lock()
	n.modal = nil
	n.mu.Unlock()

	n.notify()
}

// Modal returns the active modal, nil when none is shown.
func (n *Notifier) Modal() Modal {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.modal
}

func (n *Notifier) notify() {
	if n.onChange != nil {
		n.onChange()
	}
}
