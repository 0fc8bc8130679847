package genai

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const liveEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// LiveSetup is the first frame sent on a live session.
type LiveSetup struct {
	Model                    string                `json:"model"`
	GenerationConfig         *LiveGenerationConfig `json:"generationConfig,omitempty"`
	SystemInstruction        *GeminiContent        `json:"systemInstruction,omitempty"`
	InputAudioTranscription  *struct{}             `json:"inputAudioTranscription,omitempty"`
	OutputAudioTranscription *struct{}             `json:"outputAudioTranscription,omitempty"`
}

type LiveGenerationConfig struct {
	ResponseModalities []string          `json:"responseModalities,omitempty"`
	SpeechConfig       *LiveSpeechConfig `json:"speechConfig,omitempty"`
}

type LiveSpeechConfig struct {
	VoiceConfig *LiveVoiceConfig `json:"voiceConfig,omitempty"`
}

type LiveVoiceConfig struct {
	PrebuiltVoiceConfig *LivePrebuiltVoice `json:"prebuiltVoiceConfig,omitempty"`
}

type LivePrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type liveClientMessage struct {
	Setup         *LiveSetup         `json:"setup,omitempty"`
	RealtimeInput *liveRealtimeInput `json:"realtimeInput,omitempty"`
}

type liveRealtimeInput struct {
	MediaChunks []*liveBlob `json:"mediaChunks,omitempty"`
}

type liveBlob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type liveServerMessage struct {
	SetupComplete *struct{}          `json:"setupComplete,omitempty"`
	ServerContent *liveServerContent `json:"serverContent,omitempty"`
}

type liveServerContent struct {
	ModelTurn           *liveModelTurn     `json:"modelTurn,omitempty"`
	InputTranscription  *liveTranscription `json:"inputTranscription,omitempty"`
	OutputTranscription *liveTranscription `json:"outputTranscription,omitempty"`
	TurnComplete        bool               `json:"turnComplete,omitempty"`
	Interrupted         bool               `json:"interrupted,omitempty"`
}

type liveTranscription struct {
	Text string `json:"text"`
}

type liveModelTurn struct {
	Parts []*livePart `json:"parts,omitempty"`
}

type livePart struct {
	InlineData *liveBlob `json:"inlineData,omitempty"`
}

// LiveEvent is one downstream occurrence on a live session, already decoded
// out of the provider's envelope. Exactly one of the payload fields is
// meaningful per Kind.
type LiveEvent struct {
	Kind  LiveEventKind
	Audio []byte // KindAudio: raw PCM16 @24kHz
	Text  string // KindInputTranscript / KindOutputTranscript
	Err   error  // KindClosed, nil on clean shutdown
}

type LiveEventKind int

const (
	KindSetupComplete LiveEventKind = iota
	KindAudio
	KindInputTranscript
	KindOutputTranscript
	KindTurnComplete
	KindInterrupted
	KindClosed
)

// LiveSessionConfig carries the per-call parameters for DialLive.
type LiveSessionConfig struct {
	Model             string
	VoiceName         string
	SystemInstruction string
}

// LiveSession is a single bidirectional audio conversation. Writes are
// serialized internally; events arrive on Events until a KindClosed event,
// after which the channel is closed.
type LiveSession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	events  chan LiveEvent

	closeOnce sync.Once
}

// DialLive opens a live session and sends the setup frame. The returned
// session is not usable until a KindSetupComplete event arrives.
func DialLive(apiKey string, cfg LiveSessionConfig) (*LiveSession, error) {
	header := http.Header{}
	header.Set("x-goog-api-key", apiKey)

	conn, resp, err := websocket.DefaultDialer.Dial(liveEndpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("live dial failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("live dial failed: %w", err)
	}

	s := &LiveSession{
		conn:   conn,
		events: make(chan LiveEvent, 64),
	}

	setup := liveClientMessage{
		Setup: &LiveSetup{
			Model: "models/" + cfg.Model,
			GenerationConfig: &LiveGenerationConfig{
				ResponseModalities: []string{"AUDIO"},
				SpeechConfig: &LiveSpeechConfig{
					VoiceConfig: &LiveVoiceConfig{
						PrebuiltVoiceConfig: &LivePrebuiltVoice{VoiceName: cfg.VoiceName},
					},
				},
			},
			SystemInstruction: &GeminiContent{
				Parts: []*GeminiPart{{Text: cfg.SystemInstruction}},
			},
			InputAudioTranscription:  &struct{}{},
			OutputAudioTranscription: &struct{}{},
		},
	}
	if err := s.writeJSON(setup); err != nil {
		conn.Close()
		return nil, fmt.Errorf("live setup failed: %w", err)
	}

	go s.readLoop()

	return s, nil
}

// Events returns the downstream event channel.
func (s *LiveSession) Events() <-chan LiveEvent {
	return s.events
}

// SendAudio forwards one chunk of PCM16 @16kHz microphone audio.
func (s *LiveSession) SendAudio(pcm []byte) error {
	msg := liveClientMessage{
		RealtimeInput: &liveRealtimeInput{
			MediaChunks: []*liveBlob{
				{
					MimeType: "audio/pcm;rate=16000",
					Data:     base64.StdEncoding.EncodeToString(pcm),
				},
			},
		},
	}
	return s.writeJSON(msg)
}

// Close tears the connection down. Safe to call more than once and
// concurrently with SendAudio.
func (s *LiveSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		s.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		s.writeMu.Unlock()
		err = s.conn.Close()
	})
	return err
}

func (s *LiveSession) writeJSON(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *LiveSession) readLoop() {
	defer close(s.events)
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = nil
			}
			s.events <- LiveEvent{Kind: KindClosed, Err: err}
			return
		}

		var msg liveServerMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		if msg.SetupComplete != nil {
			s.events <- LiveEvent{Kind: KindSetupComplete}
		}

		sc := msg.ServerContent
		if sc == nil {
			continue
		}
		if sc.Interrupted {
			s.events <- LiveEvent{Kind: KindInterrupted}
		}
		if sc.InputTranscription != nil && sc.InputTranscription.Text != "" {
			s.events <- LiveEvent{Kind: KindInputTranscript, Text: sc.InputTranscription.Text}
		}
		if sc.OutputTranscription != nil && sc.OutputTranscription.Text != "" {
			s.events <- LiveEvent{Kind: KindOutputTranscript, Text: sc.OutputTranscription.Text}
		}
		if sc.ModelTurn != nil {
			for _, part := range sc.ModelTurn.Parts {
				if part.InlineData == nil || part.InlineData.Data == "" {
					continue
				}
				pcm, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil || len(pcm) == 0 {
					continue
				}
				s.events <- LiveEvent{Kind: KindAudio, Audio: pcm}
			}
		}
		if sc.TurnComplete {
			s.events <- LiveEvent{Kind: KindTurnComplete}
		}
	}
}
