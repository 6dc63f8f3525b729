package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// sentenceTerminator splits text on Latin and Arabic sentence-terminal
// punctuation.
var sentenceTerminator = regexp.MustCompile(`[.!؟?؛;]+`)

// splitSentences segments text into trimmed, non-empty sentences.
func splitSentences(text string) []string {
	parts := sentenceTerminator.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// runeLen returns the rune count of s. Thresholds are character counts
// over Arabic text, so byte lengths would overcount threefold.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncateRunes shortens s to at most n runes for use in examples.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
