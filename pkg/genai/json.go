package genai

import (
	"bytes"
	"fmt"
)

// ExtractJSONObject pulls the first balanced top-level {...} span out of a
// model response. Models wrap JSON in markdown fences or chatter
// ("Sure! Here is the data: {...} enjoy!") often enough that parsing the raw
// text directly is not viable.
func ExtractJSONObject(raw string) (string, error) {
	text := bytes.TrimSpace([]byte(raw))
	text = bytes.TrimPrefix(text, []byte("```json"))
	text = bytes.TrimPrefix(text, []byte("```"))
	text = bytes.TrimSuffix(text, []byte("```"))

	start := bytes.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(text[start : i+1]), nil
			}
		}
	}

	return "", fmt.Errorf("unbalanced JSON object in response")
}
