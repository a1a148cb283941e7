package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rentbooks/rentbooks/internal/apperrors"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	portssvc "github.com/rentbooks/rentbooks/internal/core/ports/services"
)

// settleBuffer is added to every notification's display duration before the
// auto-hide fires, giving the toast a moment to settle visually.
const settleBuffer = 750 * time.Millisecond

// NotifierService serializes notification requests into a single visible
// toast. Strict FIFO, exactly one visible at a time, nothing dropped even
// under rapid-fire enqueue. All timing runs through the injected Clock.
type NotifierService struct {
	mu      sync.Mutex
	clock   portssvc.Clock
	logger  *slog.Logger
	queue   []domain.Notification
	current *domain.Notification
	timer   portssvc.Timer
	gen     uint64
	running bool
	subs    map[int]chan domain.Notification
	nextSub int
}

var _ portssvc.Notifier = (*NotifierService)(nil)

// NewNotifierService returns a running notifier.
func NewNotifierService(clock portssvc.Clock, logger *slog.Logger) *NotifierService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotifierService{
		clock:   clock,
		logger:  logger,
		running: true,
		subs:    make(map[int]chan domain.Notification),
	}
}

// Notify appends n to the queue tail, filling in the severity and duration
// defaults, and promotes it immediately if nothing is displayed.
func (s *NotifierService) Notify(n domain.Notification) {
	if n.Severity == "" {
		n.Severity = domain.SeveritySuccess
	}
	if n.Duration <= 0 {
		if n.Severity == domain.SeverityError {
			n.Duration = domain.ErrorDuration
		} else {
			n.Duration = domain.SuccessDuration
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.queue = append(s.queue, n)
	if s.current == nil {
		s.promoteLocked()
	}
}

// Success enqueues a success notification with the default duration.
func (s *NotifierService) Success(text string) {
	s.Notify(domain.Notification{Text: text, Severity: domain.SeveritySuccess})
}

// Error enqueues an error notification with the default duration.
func (s *NotifierService) Error(text string) {
	s.Notify(domain.Notification{Text: text, Severity: domain.SeverityError})
}

// Hide clears the display slot immediately and promotes the next queued
// item without waiting out the hidden item's remaining timer.
func (s *NotifierService) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.stopTimerLocked()
	s.current = nil
	if len(s.queue) > 0 {
		s.promoteLocked()
	}
}

// Current returns the displayed notification, or nil when the slot is empty.
func (s *NotifierService) Current() *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	shown := *s.current
	return &shown
}

// Subscribe registers a consumer of displayed notifications. Consuming a
// stopped notifier is a usage error.
func (s *NotifierService) Subscribe() (<-chan domain.Notification, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil, nil, apperrors.ErrNotRunning
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.Notification, 32)
	s.subs[id] = ch
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel, nil
}

// Stop ends the notifier's lifecycle: the timer is cancelled, the queue is
// dropped, and subscriber channels are closed.
func (s *NotifierService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.stopTimerLocked()
	s.current = nil
	s.queue = nil
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// promoteLocked moves the queue head into the display slot and arms the
// auto-hide timer for duration + settleBuffer. Callers hold s.mu.
func (s *NotifierService) promoteLocked() {
	head := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &head
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(head.Duration+settleBuffer, func() {
		s.expire(gen)
	})
	for _, ch := range s.subs {
		select {
		case ch <- head:
		default:
			s.logger.Warn("notification subscriber is slow, dropping delivery")
		}
	}
}

// expire is the auto-hide callback. The generation guard makes a stale
// timer firing after a manual Hide a no-op.
func (s *NotifierService) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.gen != gen || s.current == nil {
		return
	}
	s.current = nil
	s.timer = nil
	if len(s.queue) > 0 {
		s.promoteLocked()
	}
}

func (s *NotifierService) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++ // invalidate any in-flight expire
}
