package call

import (
	"fmt"
	"sync"
	"time"

	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/model"
	"monarch-crm-be/internal/pkg/logger"
	"monarch-crm-be/pkg/genai"
)

type State string

const (
	StateConnecting State = "connecting"
	StateCalling    State = "calling"
	StateConnected  State = "connected"
	StateEnded      State = "ended"
)

// answerDelay simulates the callee picking up: the provider has no ring
// phase, so "connected" is forced a beat after the stream opens.
const defaultAnswerDelay = 2 * time.Second

// Upstream is the provider leg of the bridge.
type Upstream interface {
	Events() <-chan genai.LiveEvent
	SendAudio(pcm []byte) error
	Close() error
}

// DialFunc opens the provider leg for a lead-specific system instruction.
type DialFunc func(systemInstruction string) (Upstream, error)

// ClientWriter is the browser leg. Both websocket stacks in use satisfy it.
type ClientWriter interface {
	WriteJSON(v interface{}) error
}

type SessionConfig struct {
	Lead        *model.Lead
	Client      ClientWriter
	Dial        DialFunc
	Log         logger.ILogger
	Clock       Clock
	AnswerDelay time.Duration
	// OnStatus fires on every state change, after the client frame is sent.
	OnStatus func(lead *model.Lead, state State, errMsg string)
}

// Session bridges one browser call socket to one live provider stream. All
// resources are owned here and released exactly once through Close.
type Session struct {
	lead        *model.Lead
	client      ClientWriter
	dial        DialFunc
	log         logger.ILogger
	answerDelay time.Duration
	onStatus    func(lead *model.Lead, state State, errMsg string)

	upstream   Upstream
	scheduler  *Scheduler
	transcript transcriptRing

	mu          sync.Mutex
	state       State
	muted       bool
	answerTimer *time.Timer

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Clock == nil {
		cfg.Clock = NewWallClock()
	}
	if cfg.AnswerDelay <= 0 {
		cfg.AnswerDelay = defaultAnswerDelay
	}

	s := &Session{
		lead:        cfg.Lead,
		client:      cfg.Client,
		dial:        cfg.Dial,
		log:         cfg.Log,
		answerDelay: cfg.AnswerDelay,
		onStatus:    cfg.OnStatus,
		state:       StateConnecting,
		done:        make(chan struct{}),
	}
	s.scheduler = NewScheduler(cfg.Clock, s.emitSegment)
	return s
}

// Start dials the provider and begins pumping downstream events. A dial or
// setup failure ends the session with an error status instead of leaving it
// stuck in connecting.
func (s *Session) Start() error {
	s.pushStatus(StateConnecting, "")

	upstream, err := s.dial(s.systemInstruction())
	if err != nil {
		s.log.Error("call", "failed to open upstream voice stream", map[string]interface{}{
			"lead_id": s.lead.Id.String(),
			"error":   err.Error(),
		})
		s.closeWithError("voice stream unavailable")
		return err
	}

	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		upstream.Close()
		return fmt.Errorf("session already ended")
	}
	s.upstream = upstream
	s.mu.Unlock()

	go s.pump()
	return nil
}

// Done closes when the session has fully torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns the completed-turn history.
func (s *Session) Transcript() []dto.TranscriptEntry {
	return s.transcript.Entries()
}

// HandleClientFrame processes one message from the browser socket.
func (s *Session) HandleClientFrame(frame dto.CallClientFrame) {
	switch frame.Type {
	case dto.CallFrameAudio:
		s.handleAudio(frame.Data)
	case dto.CallFrameMute:
		s.mu.Lock()
		s.muted = frame.Muted
		s.mu.Unlock()
	case dto.CallFrameHangup:
		s.Close()
	default:
		s.log.Warn("call", "dropping unknown client frame", map[string]interface{}{
			"lead_id": s.lead.Id.String(),
			"type":    frame.Type,
		})
	}
}

func (s *Session) handleAudio(data string) {
	s.mu.Lock()
	muted := s.muted
	upstream := s.upstream
	ended := s.state == StateEnded
	s.mu.Unlock()

	// Muted frames are dropped locally, never buffered for later.
	if muted || ended || upstream == nil {
		return
	}

	pcm, err := DecodePCM(data)
	if err != nil {
		s.log.Warn("call", "dropping malformed microphone frame", map[string]interface{}{
			"lead_id": s.lead.Id.String(),
			"error":   err.Error(),
		})
		return
	}

	if err := upstream.SendAudio(pcm); err != nil {
		s.log.Error("call", "failed to forward microphone frame", map[string]interface{}{
			"lead_id": s.lead.Id.String(),
			"error":   err.Error(),
		})
		s.Close()
	}
}

// Close tears the session down. Idempotent and safe on a session whose
// upstream never came up.
func (s *Session) Close() {
	s.closeWithError("")
}

func (s *Session) closeWithError(errMsg string) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = StateEnded
		if s.answerTimer != nil {
			s.answerTimer.Stop()
		}
		upstream := s.upstream
		s.mu.Unlock()

		s.scheduler.Close()
		if upstream != nil {
			upstream.Close()
		}

		s.sendStatus(StateEnded, errMsg)
		if s.onStatus != nil {
			s.onStatus(s.lead, StateEnded, errMsg)
		}
		close(s.done)
	})
}

func (s *Session) pump() {
	for event := range s.upstream.Events() {
		switch event.Kind {
		case genai.KindSetupComplete:
			s.onSetupComplete()
		case genai.KindAudio:
			s.scheduler.Schedule(event.Audio)
		case genai.KindInputTranscript:
			s.transcript.AppendUser(event.Text)
		case genai.KindOutputTranscript:
			s.transcript.AppendAgent(event.Text)
		case genai.KindTurnComplete:
			s.flushTranscript()
		case genai.KindInterrupted:
			s.onInterrupted()
		case genai.KindClosed:
			if event.Err != nil {
				s.log.Error("call", "upstream voice stream failed", map[string]interface{}{
					"lead_id": s.lead.Id.String(),
					"error":   event.Err.Error(),
				})
				s.closeWithError("voice stream dropped")
			} else {
				s.Close()
			}
			return
		}
	}
}

func (s *Session) onSetupComplete() {
	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		return
	}
	s.state = StateCalling
	s.answerTimer = time.AfterFunc(s.answerDelay, s.onAnswered)
	s.mu.Unlock()

	s.sendStatus(StateCalling, "")
	if s.onStatus != nil {
		s.onStatus(s.lead, StateCalling, "")
	}
}

func (s *Session) onAnswered() {
	s.mu.Lock()
	if s.state != StateCalling {
		s.mu.Unlock()
		return
	}
	s.state = StateConnected
	s.mu.Unlock()

	s.sendStatus(StateConnected, "")
	if s.onStatus != nil {
		s.onStatus(s.lead, StateConnected, "")
	}
}

func (s *Session) onInterrupted() {
	s.scheduler.Interrupt()
	s.writeClient(dto.CallInterruptFrame{Type: dto.CallFrameInterrupt})
}

func (s *Session) flushTranscript() {
	entries, changed := s.transcript.Flush()
	if !changed {
		return
	}
	s.writeClient(dto.CallTranscriptFrame{
		Type:    dto.CallFrameTrans,
		Entries: entries,
	})
}

func (s *Session) emitSegment(seg Segment) {
	s.writeClient(dto.CallAudioFrame{
		Type:     dto.CallFrameAudio,
		Data:     EncodePCM(seg.PCM),
		StartAt:  seg.StartAt.Seconds(),
		Duration: seg.Duration.Seconds(),
	})
}

func (s *Session) pushStatus(state State, errMsg string) {
	s.sendStatus(state, errMsg)
	if s.onStatus != nil {
		s.onStatus(s.lead, state, errMsg)
	}
}

func (s *Session) sendStatus(state State, errMsg string) {
	s.writeClient(dto.CallStatusFrame{
		Type:   dto.CallFrameStatus,
		Status: string(state),
		Error:  errMsg,
	})
}

func (s *Session) writeClient(v interface{}) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.client.WriteJSON(v); err != nil {
		s.log.Debug("call", "client socket write failed", map[string]interface{}{
			"lead_id": s.lead.Id.String(),
			"error":   err.Error(),
		})
	}
}

func (s *Session) systemInstruction() string {
	return fmt.Sprintf(
		`You are an AI Outbound Agent calling %s on behalf of Roy's Company.
Your goal is to pitch an AI voice agent service. Be friendly, professional, and try to handle objections.
Start by introducing yourself: "Hi %s, this is Roy's AI assistant calling..."`,
		s.lead.Name, s.lead.Name,
	)
}
