package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// similarityLevenshteinMax is the rune length above which the
// comparison switches from normalized edit distance to word overlap.
// Levenshtein is O(n*m); word overlap is the cheap fallback that keeps
// pathological inputs (many long, near-identical sentences) bounded.
const similarityLevenshteinMax = 500

// tashkeelRange covers the Arabic tashkeel combining marks
// (fathatan through wavy hamza below).
var tashkeelRange = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
	},
}

// diacriticStripper drops the tashkeel combining range before sentence
// comparison. Text is not decomposed first: precomposed hamza letters
// (أ إ ؤ ئ آ) must survive stripping unchanged.
var diacriticStripper = runes.Remove(runes.In(tashkeelRange))

// comparisonPunctuation is replaced with spaces during normalization.
const comparisonPunctuation = ".,،؛:;!؟?()[]{}«»\"'"

// normalizeSentence prepares a sentence for similarity comparison:
// diacritics removed, punctuation replaced by spaces, whitespace
// collapsed, case folded.
func normalizeSentence(sentence string) string {
	stripped, _, err := transform.String(diacriticStripper, sentence)
	if err != nil {
		stripped = sentence
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if strings.ContainsRune(comparisonPunctuation, r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}

	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

// similarity returns the similarity ratio of two normalized sentences
// in [0,1]. Short strings use normalized Levenshtein distance; strings
// over similarityLevenshteinMax runes use Jaccard word overlap. The
// two-branch strategy is deliberate: edit distance is more precise but
// too costly for long near-duplicates.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) > similarityLevenshteinMax || len(rb) > similarityLevenshteinMax {
		return wordOverlap(a, b)
	}

	distance := levenshtein(ra, rb)
	maxLen := max(len(ra), len(rb))
	return 1 - float64(distance)/float64(maxLen)
}

// levenshtein computes the edit distance with a two-row matrix.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// wordOverlap returns the Jaccard ratio of the two word sets.
func wordOverlap(a, b string) float64 {
	wordsA := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		wordsA[w] = true
	}
	wordsB := make(map[string]bool)
	for _, w := range strings.Fields(b) {
		wordsB[w] = true
	}

	overlap := 0
	for w := range wordsA {
		if wordsB[w] {
			overlap++
		}
	}

	union := len(wordsA) + len(wordsB) - overlap
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}
