package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Media thresholds.
const (
	// decorativeSizeMax marks images below this width or height as
	// decorative icons rather than illustrations.
	decorativeSizeMax = 60

	// badAltMin is the minimum alt-text length that counts as a real
	// description.
	badAltMin = 5

	mediaExampleCap = 5
)

// decorativeKeywords filter out flags, icons, and logos by filename or
// alt text. Latin and Arabic variants both appear in the wild.
var decorativeKeywords = []string{
	"flag", "Flag", "علم", "logo", "Logo", "رمز",
	"Icon", "icon", "أيقونة", "Symbol", "symbol",
}

// nonFreeKeywords mark images uploaded under a fair-use or other
// non-free license.
var nonFreeKeywords = []string{
	"Fair use", "fair use", "Fair_use",
	"Non-free", "non-free", "Nonfree", "nonfree",
	"غير حر", "غير_حر", "fairuse", "Fairuse",
}

var (
	arabicScript       = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)
	mediaFileExtension = regexp.MustCompile(`(?i)\.(jpg|png|svg|jpeg|gif)$`)
)

// AnalyzeMedia scores image, video, and audio coverage on a 0-10 scale:
// presence and informativeness, accessibility, licensing signals, and
// density relative to article length.
func AnalyzeMedia(doc *document.Document) *model.MediaResult {
	details := collectMediaDetails(doc)

	return &model.MediaResult{
		Score:   mediaScore(details),
		Details: details,
		Notes:   mediaNotes(details, doc),
	}
}

func collectMediaDetails(doc *document.Document) model.MediaDetails {
	details := model.MediaDetails{
		InfoboxImages: doc.Root().Find(".infobox img, .infobox figure img").Length(),
		Videos:        doc.Body().Find("video").Length(),
		Audios:        doc.Body().Find("audio").Length(),
	}

	doc.Body().Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		alt := img.AttrOr("alt", "")
		width, _ := strconv.Atoi(img.AttrOr("width", ""))
		height, _ := strconv.Atoi(img.AttrOr("height", ""))
		filename := imageFilename(src)

		details.ArticleImages++

		smallIcon := width < decorativeSizeMax || height < decorativeSizeMax
		flagOrIcon := strings.Contains(src, "Flag_of") || strings.Contains(src, "علم_") ||
			strings.Contains(src, "Icon-") || strings.Contains(src, "أيقونة")
		if smallIcon || flagOrIcon {
			details.DecorativeImages++
		} else {
			details.InformativeImages++
		}

		if strings.TrimSpace(alt) == "" {
			details.ImagesWithoutAlt++
		}

		if matchesAnyKeyword(decorativeKeywords, filename, alt, src) || (width > 0 && width < decorativeSizeMax) {
			details.FilteredOut++
			if len(details.Examples.FilteredOut) < mediaExampleCap {
				reason := "too small"
				if matchesAnyKeyword(decorativeKeywords, filename, alt, src) {
					reason = "keyword match"
				}
				details.Examples.FilteredOut = append(details.Examples.FilteredOut,
					model.FilteredImage{Filename: truncateRunes(filename, 50), Reason: reason})
			}
		}

		if matchesAnyKeyword(nonFreeKeywords, filename, alt, src) {
			details.NonFreeCount++
			if len(details.Examples.NonFree) < mediaExampleCap {
				details.Examples.NonFree = append(details.Examples.NonFree,
					truncateRunes(filename, 60))
			}
		}

		// Registry-origin estimate from URL shape alone; no metadata
		// lookup happens here.
		fromRegistry := strings.Contains(src, "commons") ||
			strings.Contains(src, "upload.wikimedia.org") ||
			strings.HasPrefix(filename, "File:") ||
			mediaFileExtension.MatchString(filename)
		if fromRegistry {
			details.RegistryLikely++
			if arabicScript.MatchString(filename) || arabicScript.MatchString(alt) {
				details.LocalDescriptionLikely++
			} else if len(details.Examples.NoLocalDescription) < mediaExampleCap {
				details.Examples.NoLocalDescription = append(details.Examples.NoLocalDescription,
					truncateRunes(filename, 50))
			}
		} else if len(details.Examples.NotFromRegistry) < mediaExampleCap {
			details.Examples.NotFromRegistry = append(details.Examples.NotFromRegistry,
				truncateRunes(filename, 50))
		}

		if runeLen(strings.TrimSpace(alt)) < badAltMin {
			details.BadAltCount++
			if len(details.Examples.BadAltText) < mediaExampleCap {
				issue := "too short"
				shownAlt := alt
				if alt == "" {
					issue = "missing"
					shownAlt = "(missing)"
				}
				details.Examples.BadAltText = append(details.Examples.BadAltText,
					model.BadAltImage{Filename: truncateRunes(filename, 40), Alt: shownAlt, Issue: issue})
			}
		}
	})

	paragraphs := doc.Root().Find("p")
	details.HasLeadImage = paragraphs.Slice(0, min(3, paragraphs.Length())).Find("img").Length() > 0 ||
		doc.Infobox().Find("img").Length() > 0

	details.CorrectedCount = countCorrectedMedia(doc)
	if wc := doc.WordCount(); wc > 0 {
		details.Density = float64(details.CorrectedCount) / float64(wc) * 100
	}

	return details
}

// countCorrectedMedia counts body images excluding navigational regions
// and decorative matches. This is the density basis.
func countCorrectedMedia(doc *document.Document) int {
	content := doc.Root().Clone()
	content.Find(".infobox, .navbox, .sidebar, .mbox, .reflist, .references").Remove()

	count := 0
	content.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		width, _ := strconv.Atoi(img.AttrOr("width", ""))
		filename := imageFilename(src)

		if matchesAnyKeyword(decorativeKeywords, filename, src) {
			return
		}
		if width > 0 && width < decorativeSizeMax {
			return
		}
		count++
	})
	return count
}

func mediaScore(details model.MediaDetails) float64 {
	score := 0.0

	// Informative images (0-5).
	switch {
	case details.InformativeImages >= 5:
		score += 5
	case details.InformativeImages >= 3:
		score += 4
	case details.InformativeImages >= 1:
		score += 3
	}

	if details.InfoboxImages > 0 {
		score += 2
	}

	if details.Videos > 0 || details.Audios > 0 {
		score += 1
	}

	if details.CorrectedCount > 0 {
		if details.Density >= 0.3 && details.Density <= 1.5 {
			score += 1
		} else if details.Density > 1.5 {
			score += 1.5
		}
	}

	if details.NonFreeCount > 0 {
		score -= min(float64(details.NonFreeCount)*0.3, 2)
	}

	if details.BadAltCount > 0 {
		score -= min(float64(details.BadAltCount)*0.2, 2)
	}

	if details.RegistryLikely > 0 && float64(details.LocalDescriptionLikely) >= float64(details.RegistryLikely)/2 {
		score += 0.5
	}

	if details.FilteredOut > details.InformativeImages {
		score -= 1
	}

	return clamp(score, 0, 10)
}

func mediaNotes(details model.MediaDetails, doc *document.Document) []string {
	notes := make([]string, 0)

	switch {
	case details.ArticleImages == 0 && details.InfoboxImages == 0:
		notes = append(notes, "article has no images; add illustrative images from the shared media repository")
	case details.ArticleImages == 0 && details.InfoboxImages > 0:
		notes = append(notes, "images appear only in the infobox; add illustrations to the article body")
	case doc.ArticleLength > 5000 && details.InformativeImages < 3:
		notes = append(notes, "article is long but has few images; add more illustrations")
	}

	if details.ImagesWithoutAlt > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d images lack alt text; describe every image to improve accessibility",
			details.ImagesWithoutAlt))
	}

	if details.DecorativeImages > details.InformativeImages && details.InformativeImages > 0 {
		notes = append(notes, "decorative images (icons and flags) outnumber illustrations; focus on informative images")
	}

	if details.NonFreeCount > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d non-free images detected; prefer free replacements from the shared media repository",
			details.NonFreeCount))
	}

	if details.BadAltCount > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d images have missing or very short alt text; improve the descriptions",
			details.BadAltCount))
	}

	if details.RegistryLikely > 0 && float64(details.LocalDescriptionLikely) < float64(details.RegistryLikely)/2 {
		notes = append(notes, "most images appear to lack an Arabic description; add localized descriptions upstream")
	}

	if details.Density < 0.5 && doc.ArticleLength > 3000 {
		notes = append(notes, fmt.Sprintf(
			"low media density (%.2f%%); add more illustrative media", details.Density))
	}

	return notes
}

func imageFilename(src string) string {
	if idx := strings.LastIndex(src, "/"); idx >= 0 {
		return src[idx+1:]
	}
	return src
}

func matchesAnyKeyword(keywords []string, haystacks ...string) bool {
	for _, k := range keywords {
		for _, h := range haystacks {
			if strings.Contains(h, k) {
				return true
			}
		}
	}
	return false
}
