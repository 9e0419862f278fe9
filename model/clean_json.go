package model

import (
	"bytes"
	"strings"
)

// CleanModelJson strips markdown code fences that models sometimes wrap
// around JSON output, plus surrounding whitespace.
func CleanModelJson(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	return bytes.TrimSpace([]byte(s))
}
