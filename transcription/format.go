package transcription

import (
	"regexp"
	"strings"
	"unicode"
)

var speakerLabelRe = regexp.MustCompile(`(?i)\b(?:spk[_-]?\d+|speaker\s*\d+)\s*:\s*`)
var whitespaceRe = regexp.MustCompile(`\s+`)

// FormatTranscript lightly reformats raw transcript text: speaker labels
// are stripped, whitespace is collapsed, and sentence starts are
// recapitalized.
func FormatTranscript(text string) string {
	text = speakerLabelRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return capitalizeSentences(text)
}

func capitalizeSentences(text string) string {
	runes := []rune(text)
	atSentenceStart := true

	for i, r := range runes {
		if atSentenceStart && unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			atSentenceStart = false
			continue
		}

		switch r {
		case '.', '!', '?':
			atSentenceStart = true
		default:
			if !unicode.IsSpace(r) {
				atSentenceStart = false
			}
		}
	}

	return string(runes)
}
