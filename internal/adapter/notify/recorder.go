package notify

import (
	"sync"

	"crypto-blackjack/internal/core/domain"

	"github.com/rs/zerolog"
)

// Recorder implements ports.Notifier: it mirrors every notification
// into the structured log and keeps a bounded buffer of recent ones
// for the presentation layer to poll. Notify never blocks beyond a
// brief mutex hold.
type Recorder struct {
	mu       sync.Mutex
	recent   []domain.Notification
	capacity int
	log      zerolog.Logger
}

// NewRecorder creates a recorder keeping at most capacity
// notifications, newest first.
func NewRecorder(capacity int, log zerolog.Logger) *Recorder {
	return &Recorder{capacity: capacity, log: log}
}

// Notify implements ports.Notifier.
func (r *Recorder) Notify(n domain.Notification) {
	event := r.log.Info()
	if n.Severity == domain.SeverityError {
		event = r.log.Warn()
	}
	event.Str("title", n.Title).Str("severity", string(n.Severity)).Msg(n.Description)

	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([]domain.Notification, 0, len(r.recent)+1)
	buf = append(buf, n)
	buf = append(buf, r.recent...)
	if len(buf) > r.capacity {
		buf = buf[:r.capacity]
	}
	r.recent = buf
}

// Recent returns the buffered notifications, newest first.
func (r *Recorder) Recent() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Notification, len(r.recent))
	copy(out, r.recent)
	return out
}
