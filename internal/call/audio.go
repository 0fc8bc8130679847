package call

import (
	"encoding/base64"
	"fmt"
	"time"
)

const (
	// Fixed formats on both legs of the bridge: PCM16 mono throughout,
	// 16kHz on the microphone path and 24kHz on the agent voice path.
	CaptureRate  = 16000
	PlaybackRate = 24000

	bytesPerSample = 2
)

// DecodePCM unwraps a base64 audio payload and checks sample alignment.
func DecodePCM(data string) ([]byte, error) {
	pcm, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid audio payload: %w", err)
	}
	if len(pcm) == 0 || len(pcm)%bytesPerSample != 0 {
		return nil, fmt.Errorf("audio payload is not whole PCM16 samples, got %d bytes", len(pcm))
	}
	return pcm, nil
}

// EncodePCM wraps raw PCM16 for transport.
func EncodePCM(pcm []byte) string {
	return base64.StdEncoding.EncodeToString(pcm)
}

// PCMDuration converts a PCM16 byte length at the given sample rate into
// wall-clock playout time.
func PCMDuration(byteLen, sampleRate int) time.Duration {
	samples := byteLen / bytesPerSample
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
