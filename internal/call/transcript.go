package call

import (
	"strings"
	"sync"

	"monarch-crm-be/internal/dto"
)

// transcriptLimit caps the rolling transcript at the newest entries; older
// turns fall off the front.
const transcriptLimit = 10

// transcriptRing accumulates streamed transcription fragments for the turn
// in flight and keeps a bounded history of completed turns.
type transcriptRing struct {
	mu           sync.Mutex
	pendingUser  strings.Builder
	pendingAgent strings.Builder
	entries      []dto.TranscriptEntry
}

func (r *transcriptRing) AppendUser(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingUser.WriteString(text)
}

func (r *transcriptRing) AppendAgent(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingAgent.WriteString(text)
}

// Flush closes out the current turn. The user entry lands before the agent
// entry; empty sides are skipped. Returns the updated history and whether
// the turn contributed anything.
func (r *transcriptRing) Flush() ([]dto.TranscriptEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userText := r.pendingUser.String()
	agentText := r.pendingAgent.String()
	r.pendingUser.Reset()
	r.pendingAgent.Reset()

	if userText == "" && agentText == "" {
		return r.snapshot(), false
	}

	if userText != "" {
		r.entries = append(r.entries, dto.TranscriptEntry{Speaker: "user", Text: userText})
	}
	if agentText != "" {
		r.entries = append(r.entries, dto.TranscriptEntry{Speaker: "agent", Text: agentText})
	}
	if overflow := len(r.entries) - transcriptLimit; overflow > 0 {
		r.entries = append(r.entries[:0], r.entries[overflow:]...)
	}

	return r.snapshot(), true
}

func (r *transcriptRing) Entries() []dto.TranscriptEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

func (r *transcriptRing) snapshot() []dto.TranscriptEntry {
	out := make([]dto.TranscriptEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
