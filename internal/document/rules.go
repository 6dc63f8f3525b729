package document

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// ruleSpec is the on-wiki JSON shape of one grammar rule.
type ruleSpec struct {
	Pattern     string `json:"pattern"`
	Flags       string `json:"flags"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// ParseGrammarRules decodes a community-maintained rule page. Rules
// whose pattern does not compile are skipped with a warning rather than
// failing the whole set; one bad on-wiki edit must not disable grammar
// checking. A decoding failure of the page itself returns an error and
// the caller falls back to the built-in rules.
func ParseGrammarRules(data []byte) ([]GrammarRule, error) {
	var specs []ruleSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, err
	}

	rules := make([]GrammarRule, 0, len(specs))
	for _, spec := range specs {
		if spec.Pattern == "" {
			continue
		}

		pattern := spec.Pattern
		if strings.Contains(spec.Flags, "i") {
			pattern = "(?i)" + pattern
		}

		compiled, err := regexp.Compile(pattern)
		if err != nil {
			slog.Warn("skipping malformed grammar rule",
				slog.String("pattern", spec.Pattern),
				slog.String("error", err.Error()))
			continue
		}

		rules = append(rules, GrammarRule{
			Pattern:     compiled,
			Description: spec.Description,
			Suggestion:  spec.Suggestion,
		})
	}
	return rules, nil
}

// DefaultGrammarRules returns the built-in Arabic rule set: common
// spelling mistakes, colloquialisms, filler, stiff translated
// constructions, and punctuation slips.
func DefaultGrammarRules() []GrammarRule {
	return []GrammarRule{
		{Pattern: regexp.MustCompile(`هاذا`), Description: "خطأ إملائي: هاذا → هذا"},
		{Pattern: regexp.MustCompile(`هاذه`), Description: "خطأ إملائي: هاذه → هذه"},
		{Pattern: regexp.MustCompile(`ذالك`), Description: "خطأ إملائي: ذالك → ذلك"},
		{Pattern: regexp.MustCompile(`لذالك`), Description: "خطأ إملائي: لذالك → لذلك"},
		{Pattern: regexp.MustCompile(`مسؤلية`), Description: "خطأ إملائي: مسؤلية → مسؤولية"},
		{
			Pattern:     regexp.MustCompile(`إست`),
			Exclude:     regexp.MustCompile(`إست(?:ان|قبل)`),
			Description: "خطأ إملائي: إست → است",
		},
		{Pattern: regexp.MustCompile(`\sالى\s`), Description: "خطأ إملائي: الى → إلى"},
		{Pattern: regexp.MustCompile(`حفض`), Description: "خطأ إملائي: حفض → حفظ"},
		{Pattern: regexp.MustCompile(`معضم`), Description: "خطأ إملائي: معضم → معظم"},
		{Pattern: regexp.MustCompile(`كده|كدا|كدة`), Description: "تعبير عامي"},
		{Pattern: regexp.MustCompile(`علشان|عشان`), Description: "تعبير عامي"},
		{Pattern: regexp.MustCompile(`جداً جداً`), Description: "حشو لغوي"},
		{Pattern: regexp.MustCompile(`هو كان|كانت هي`), Description: "ترجمة آلية ركيكة"},
		{Pattern: regexp.MustCompile(` ,`), Description: "ترقيم خاطئ: مسافة قبل الفاصلة"},
		{Pattern: regexp.MustCompile(`!!`), Description: "ترقيم زائد"},
	}
}
