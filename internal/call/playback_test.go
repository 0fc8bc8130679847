package call

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

// pcmOfDuration builds a silent PCM16 @24kHz buffer lasting d.
func pcmOfDuration(d time.Duration) []byte {
	samples := int(d * PlaybackRate / time.Second)
	return make([]byte, samples*2)
}

func TestSchedulerQueuesBackToBack(t *testing.T) {
	clock := &fakeClock{now: 10 * time.Second}
	var emitted []Segment
	s := NewScheduler(clock, func(seg Segment) { emitted = append(emitted, seg) })
	defer s.Close()

	first, ok := s.Schedule(pcmOfDuration(1 * time.Second))
	if !ok {
		t.Fatal("schedule refused")
	}
	second, _ := s.Schedule(pcmOfDuration(1500 * time.Millisecond))

	if first.StartAt != 10*time.Second {
		t.Errorf("first segment starts at %v, want 10s", first.StartAt)
	}
	if second.StartAt != 11*time.Second {
		t.Errorf("second segment starts at %v, want 11s", second.StartAt)
	}
	if got := s.Cursor(); got != 12500*time.Millisecond {
		t.Errorf("cursor at %v, want 12.5s", got)
	}
	if len(emitted) != 2 {
		t.Fatalf("emitted %d segments, want 2", len(emitted))
	}
	if emitted[0].Duration != 1*time.Second || emitted[1].Duration != 1500*time.Millisecond {
		t.Error("emitted durations do not match scheduled audio")
	}
}

func TestSchedulerNeverSchedulesIntoThePast(t *testing.T) {
	clock := &fakeClock{now: 5 * time.Second}
	s := NewScheduler(clock, nil)
	defer s.Close()

	s.Schedule(pcmOfDuration(1 * time.Second)) // cursor now 6s

	// Playout fell behind: wall time has passed the cursor.
	clock.now = 9 * time.Second
	seg, _ := s.Schedule(pcmOfDuration(1 * time.Second))
	if seg.StartAt != 9*time.Second {
		t.Errorf("segment starts at %v, want clock now 9s", seg.StartAt)
	}
	if got := s.Cursor(); got != 10*time.Second {
		t.Errorf("cursor at %v, want 10s", got)
	}
}

func TestSchedulerInterruptResetsEverything(t *testing.T) {
	clock := &fakeClock{now: 10 * time.Second}
	s := NewScheduler(clock, nil)
	defer s.Close()

	s.Schedule(pcmOfDuration(1 * time.Second))
	s.Schedule(pcmOfDuration(2 * time.Second))
	if s.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", s.Pending())
	}

	s.Interrupt()

	if s.Pending() != 0 {
		t.Errorf("pending = %d after interrupt, want 0", s.Pending())
	}
	if s.Cursor() != 0 {
		t.Errorf("cursor = %v after interrupt, want 0", s.Cursor())
	}

	// Next reply starts fresh at the current clock position.
	seg, _ := s.Schedule(pcmOfDuration(1 * time.Second))
	if seg.StartAt != 10*time.Second {
		t.Errorf("post-interrupt segment starts at %v, want 10s", seg.StartAt)
	}
}

func TestSchedulerRefusesAfterClose(t *testing.T) {
	s := NewScheduler(&fakeClock{}, nil)
	s.Close()
	if _, ok := s.Schedule(pcmOfDuration(time.Second)); ok {
		t.Error("scheduler accepted audio after close")
	}
}

func TestPCMDuration(t *testing.T) {
	tests := []struct {
		byteLen    int
		sampleRate int
		want       time.Duration
	}{
		{48000, 24000, 1 * time.Second},
		{24000, 24000, 500 * time.Millisecond},
		{32000, 16000, 1 * time.Second},
		{0, 24000, 0},
	}
	for _, tt := range tests {
		if got := PCMDuration(tt.byteLen, tt.sampleRate); got != tt.want {
			t.Errorf("PCMDuration(%d, %d) = %v, want %v", tt.byteLen, tt.sampleRate, got, tt.want)
		}
	}
}
