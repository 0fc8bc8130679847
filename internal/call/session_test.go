package call

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/model"
	"monarch-crm-be/pkg/genai"

	"github.com/google/uuid"
)

type stubUpstream struct {
	events chan genai.LiveEvent

	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func newStubUpstream() *stubUpstream {
	return &stubUpstream{events: make(chan genai.LiveEvent, 64)}
}

func (u *stubUpstream) Events() <-chan genai.LiveEvent { return u.events }

func (u *stubUpstream) SendAudio(pcm []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sent = append(u.sent, pcm)
	return nil
}

func (u *stubUpstream) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.closed {
		u.closed = true
		close(u.events)
	}
	return nil
}

func (u *stubUpstream) sentFrames() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.sent)
}

type frameRecorder struct {
	mu     sync.Mutex
	frames []json.RawMessage
}

func (r *frameRecorder) WriteJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.frames = append(r.frames, data)
	r.mu.Unlock()
	return nil
}

func (r *frameRecorder) statuses() []dto.CallStatusFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dto.CallStatusFrame
	for _, raw := range r.frames {
		var frame dto.CallStatusFrame
		if json.Unmarshal(raw, &frame) == nil && frame.Type == dto.CallFrameStatus {
			out = append(out, frame)
		}
	}
	return out
}

func (r *frameRecorder) lastTranscript() (dto.CallTranscriptFrame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.frames) - 1; i >= 0; i-- {
		var frame dto.CallTranscriptFrame
		if json.Unmarshal(r.frames[i], &frame) == nil && frame.Type == dto.CallFrameTrans {
			return frame, true
		}
	}
	return dto.CallTranscriptFrame{}, false
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func testLead() *model.Lead {
	return &model.Lead{Id: uuid.New(), Name: "Victoria Langford", Status: model.LeadStatusNew}
}

func newTestSession(t *testing.T, upstream *stubUpstream, recorder *frameRecorder) *Session {
	t.Helper()
	return NewSession(SessionConfig{
		Lead:        testLead(),
		Client:      recorder,
		Dial:        func(string) (Upstream, error) { return upstream, nil },
		Log:         nopLogger{},
		Clock:       &fakeClock{},
		AnswerDelay: 10 * time.Millisecond,
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestSessionProgressesThroughStates(t *testing.T) {
	upstream := newStubUpstream()
	recorder := &frameRecorder{}
	session := newTestSession(t, upstream, recorder)
	defer session.Close()

	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.State() != StateConnecting {
		t.Fatalf("state = %s, want connecting", session.State())
	}

	upstream.events <- genai.LiveEvent{Kind: genai.KindSetupComplete}
	waitFor(t, func() bool { return session.State() == StateCalling })

	// Simulated answer fires after the configured delay.
	waitFor(t, func() bool { return session.State() == StateConnected })

	statuses := recorder.statuses()
	want := []string{"connecting", "calling", "connected"}
	if len(statuses) < len(want) {
		t.Fatalf("got %d status frames, want at least %d", len(statuses), len(want))
	}
	for i, s := range want {
		if statuses[i].Status != s {
			t.Errorf("status[%d] = %s, want %s", i, statuses[i].Status, s)
		}
	}
}

func TestSessionDialFailureEndsWithError(t *testing.T) {
	recorder := &frameRecorder{}
	session := NewSession(SessionConfig{
		Lead:   testLead(),
		Client: recorder,
		Dial:   func(string) (Upstream, error) { return nil, errors.New("dial refused") },
		Log:    nopLogger{},
	})

	if err := session.Start(); err == nil {
		t.Fatal("Start should surface the dial error")
	}
	if session.State() != StateEnded {
		t.Errorf("state = %s, want ended", session.State())
	}

	statuses := recorder.statuses()
	last := statuses[len(statuses)-1]
	if last.Status != "ended" || last.Error == "" {
		t.Errorf("final status = %+v, want ended with error", last)
	}

	<-session.Done()
}

func TestSessionMuteDropsMicrophoneFrames(t *testing.T) {
	upstream := newStubUpstream()
	session := newTestSession(t, upstream, &frameRecorder{})
	defer session.Close()
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	frame := base64.StdEncoding.EncodeToString(make([]byte, 8192))

	session.HandleClientFrame(dto.CallClientFrame{Type: dto.CallFrameAudio, Data: frame})
	if upstream.sentFrames() != 1 {
		t.Fatalf("sent %d frames, want 1", upstream.sentFrames())
	}

	session.HandleClientFrame(dto.CallClientFrame{Type: dto.CallFrameMute, Muted: true})
	session.HandleClientFrame(dto.CallClientFrame{Type: dto.CallFrameAudio, Data: frame})
	if upstream.sentFrames() != 1 {
		t.Error("muted frame reached upstream")
	}

	session.HandleClientFrame(dto.CallClientFrame{Type: dto.CallFrameMute, Muted: false})
	session.HandleClientFrame(dto.CallClientFrame{Type: dto.CallFrameAudio, Data: frame})
	if upstream.sentFrames() != 2 {
		t.Error("unmuted frame did not reach upstream")
	}
}

func TestSessionTranscriptFlushOnTurnComplete(t *testing.T) {
	upstream := newStubUpstream()
	recorder := &frameRecorder{}
	session := newTestSession(t, upstream, recorder)
	defer session.Close()
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	upstream.events <- genai.LiveEvent{Kind: genai.KindOutputTranscript, Text: "Hello, "}
	upstream.events <- genai.LiveEvent{Kind: genai.KindOutputTranscript, Text: "Victoria."}
	upstream.events <- genai.LiveEvent{Kind: genai.KindInputTranscript, Text: "Who is this?"}
	upstream.events <- genai.LiveEvent{Kind: genai.KindTurnComplete}

	waitFor(t, func() bool {
		frame, ok := recorder.lastTranscript()
		return ok && len(frame.Entries) == 2
	})

	frame, _ := recorder.lastTranscript()
	if frame.Entries[0].Speaker != "user" || frame.Entries[0].Text != "Who is this?" {
		t.Errorf("entry[0] = %+v, want the user turn first", frame.Entries[0])
	}
	if frame.Entries[1].Speaker != "agent" || frame.Entries[1].Text != "Hello, Victoria." {
		t.Errorf("entry[1] = %+v, want the assembled agent turn", frame.Entries[1])
	}
}

func TestSessionInterruptedStopsPlayback(t *testing.T) {
	upstream := newStubUpstream()
	recorder := &frameRecorder{}
	session := newTestSession(t, upstream, recorder)
	defer session.Close()
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	pcm := make([]byte, 48000)
	upstream.events <- genai.LiveEvent{Kind: genai.KindAudio, Audio: pcm}
	waitFor(t, func() bool { return session.scheduler.Pending() == 1 })

	upstream.events <- genai.LiveEvent{Kind: genai.KindInterrupted}
	waitFor(t, func() bool { return session.scheduler.Pending() == 0 })

	if session.scheduler.Cursor() != 0 {
		t.Errorf("cursor = %v after barge-in, want 0", session.scheduler.Cursor())
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	upstream := newStubUpstream()
	session := newTestSession(t, upstream, &frameRecorder{})
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	session.Close()
	session.Close()
	session.HandleClientFrame(dto.CallClientFrame{Type: dto.CallFrameHangup})

	if session.State() != StateEnded {
		t.Errorf("state = %s, want ended", session.State())
	}
	<-session.Done()

	// Audio after teardown is dropped, not forwarded.
	session.HandleClientFrame(dto.CallClientFrame{
		Type: dto.CallFrameAudio,
		Data: base64.StdEncoding.EncodeToString(make([]byte, 64)),
	})
	if upstream.sentFrames() != 0 {
		t.Error("audio reached upstream after close")
	}
}

func TestSessionUpstreamErrorEndsCall(t *testing.T) {
	upstream := newStubUpstream()
	recorder := &frameRecorder{}
	session := newTestSession(t, upstream, recorder)
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	upstream.events <- genai.LiveEvent{Kind: genai.KindClosed, Err: errors.New("connection reset")}

	<-session.Done()
	statuses := recorder.statuses()
	last := statuses[len(statuses)-1]
	if last.Status != "ended" || last.Error == "" {
		t.Errorf("final status = %+v, want ended with error", last)
	}
}
