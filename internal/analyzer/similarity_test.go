package analyzer

import (
	"strings"
	"testing"
)

func TestNormalizeSentence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips diacritics",
			input: "مَدِينَةٌ كَبِيرَةٌ",
			want:  "مدينة كبيرة",
		},
		{
			name:  "replaces punctuation and collapses whitespace",
			input: "أولاً،  ثانياً؛ (ثالثاً).",
			want:  "أولا ثانيا ثالثا",
		},
		{
			name:  "keeps hamza on precomposed letters",
			input: "أُسْرَة مُؤَسَّسَة",
			want:  "أسرة مؤسسة",
		},
		{
			name:  "folds latin case",
			input: "BBC Arabic",
			want:  "bbc arabic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := normalizeSentence(tt.input); got != tt.want {
				t.Errorf("normalizeSentence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		if got := similarity("", "نص"); got != 0 {
			t.Errorf("similarity with empty input = %v, want 0", got)
		}
	})

	t.Run("identical sentences", func(t *testing.T) {
		t.Parallel()

		if got := similarity("نفس الجملة", "نفس الجملة"); got != 1 {
			t.Errorf("similarity of identical strings = %v, want 1", got)
		}
	})

	t.Run("near duplicates clear the redundancy cutoff", func(t *testing.T) {
		t.Parallel()

		a := "تقع المدينة في شمال البلاد وتشتهر بتاريخها العريق والقديم"
		b := "تقع المدينة في شمال البلاد وتشتهر بتاريخها العريق والعتيق"

		if got := similarity(a, b); got < redundancyCutoff {
			t.Errorf("similarity = %v, want at least %v", got, redundancyCutoff)
		}
	})

	t.Run("unrelated sentences stay low", func(t *testing.T) {
		t.Parallel()

		a := "تقع المدينة في شمال البلاد"
		b := "يدرس الطلاب الرياضيات صباحاً"

		if got := similarity(a, b); got >= redundancyCutoff {
			t.Errorf("similarity = %v, want below %v", got, redundancyCutoff)
		}
	})

	t.Run("long sentences fall back to word overlap", func(t *testing.T) {
		t.Parallel()

		shared := strings.Repeat("كلمة مشتركة طويلة ", 40)
		a := shared + "خاتمة أولى"
		b := shared + "خاتمة ثانية"

		got := similarity(a, b)
		if got <= 0 || got > 1 {
			t.Errorf("similarity = %v, want in (0,1]", got)
		}
	})
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"مدينة", "مدينه", 1},
	}

	for _, tt := range tests {
		if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
