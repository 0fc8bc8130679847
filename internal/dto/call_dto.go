package dto

// Frames exchanged on the call socket between the dashboard and the call
// session adapter. Audio travels base64-encoded in both directions:
// PCM16 @16kHz upstream (microphone), PCM16 @24kHz downstream (agent voice).

type CallClientFrame struct {
	Type  string `json:"type"` // "audio" | "mute" | "hangup"
	Data  string `json:"data,omitempty"`
	Muted bool   `json:"muted,omitempty"`
}

type CallStatusFrame struct {
	Type   string `json:"type"` // "status"
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type CallTranscriptFrame struct {
	Type    string            `json:"type"` // "transcript"
	Entries []TranscriptEntry `json:"entries"`
}

type TranscriptEntry struct {
	Speaker string `json:"speaker"` // "user" | "agent"
	Text    string `json:"text"`
}

type CallAudioFrame struct {
	Type     string  `json:"type"` // "audio"
	Data     string  `json:"data"`
	StartAt  float64 `json:"start_at"` // seconds on the playback clock
	Duration float64 `json:"duration"` // seconds
}

type CallInterruptFrame struct {
	Type string `json:"type"` // "interrupt"
}

const (
	CallFrameAudio     = "audio"
	CallFrameMute      = "mute"
	CallFrameHangup    = "hangup"
	CallFrameStatus    = "status"
	CallFrameTrans     = "transcript"
	CallFrameInterrupt = "interrupt"
)
