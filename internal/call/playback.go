package call

import (
	"sync"
	"time"
)

// Clock is the playback timeline. The zero point is session start; tests
// substitute a fixed clock to pin scheduling decisions.
type Clock interface {
	Now() time.Duration
}

type wallClock struct {
	epoch time.Time
}

func NewWallClock() Clock {
	return &wallClock{epoch: time.Now()}
}

func (c *wallClock) Now() time.Duration {
	return time.Since(c.epoch)
}

// Segment is one scheduled slice of agent audio: raw PCM plus its slot on
// the playback timeline.
type Segment struct {
	PCM      []byte
	StartAt  time.Duration
	Duration time.Duration
}

type scheduledSegment struct {
	timer *time.Timer
}

// Scheduler sequences agent audio onto a gapless timeline. Segments are
// queued back to back behind a next-start cursor; the cursor never schedules
// into the past. An interrupt (barge-in) abandons everything queued and
// rewinds the cursor so the next reply starts immediately.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	cursor  time.Duration
	pending map[*scheduledSegment]struct{}
	emit    func(Segment)
	closed  bool
}

// NewScheduler builds a scheduler that reports each placed segment through
// emit. emit runs on the scheduling goroutine.
func NewScheduler(clock Clock, emit func(Segment)) *Scheduler {
	return &Scheduler{
		clock:   clock,
		pending: make(map[*scheduledSegment]struct{}),
		emit:    emit,
	}
}

// Schedule places one PCM16 @24kHz segment and returns its slot.
func (s *Scheduler) Schedule(pcm []byte) (Segment, bool) {
	duration := PCMDuration(len(pcm), PlaybackRate)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Segment{}, false
	}

	now := s.clock.Now()
	start := s.cursor
	if now > start {
		start = now
	}
	s.cursor = start + duration

	seg := Segment{PCM: pcm, StartAt: start, Duration: duration}
	tracked := &scheduledSegment{}
	tracked.timer = time.AfterFunc(s.cursor-now, func() {
		s.mu.Lock()
		delete(s.pending, tracked)
		s.mu.Unlock()
	})
	s.pending[tracked] = struct{}{}
	s.mu.Unlock()

	if s.emit != nil {
		s.emit(seg)
	}
	return seg, true
}

// Interrupt drops every queued segment and rewinds the cursor to zero.
func (s *Scheduler) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainLocked()
}

// Close interrupts and refuses further scheduling.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainLocked()
	s.closed = true
}

// Pending reports how many segments are still on the timeline.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Cursor exposes the next-start position.
func (s *Scheduler) Cursor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Scheduler) drainLocked() {
	for tracked := range s.pending {
		tracked.timer.Stop()
		delete(s.pending, tracked)
	}
	s.cursor = 0
}
