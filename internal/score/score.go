package score

import (
	"math"
	"time"

	"github.com/arwiki-tools/qualscan/internal/model"
)

// rawMax maps each criterion to the analyzer's raw scale. Rescaling a
// raw score onto its weight is raw/rawMax*weight.
var rawMax = map[model.Criterion]float64{
	model.CriterionStructure:   30,
	model.CriterionReferences:  25,
	model.CriterionMaintenance: 20,
	model.CriterionLinks:       15,
	model.CriterionMedia:       10,
	model.CriterionLanguage:    10,
	model.CriterionRevision:    10,
	model.CriterionIntegration: 10,
}

// Aggregate turns one complete analysis set into the final result. Nil
// result slots contribute zero, so a partially filled set still yields
// a valid (if low) assessment.
func Aggregate(title string, set *model.AnalysisSet) *model.FinalResult {
	if set == nil {
		set = &model.AnalysisSet{}
	}
	scores := make(map[model.Criterion]float64, len(rawMax))

	scores[model.CriterionStructure] = rescale(model.CriterionStructure, structureRaw(set))
	scores[model.CriterionReferences] = rescale(model.CriterionReferences, referenceAdjusted(set.References))
	scores[model.CriterionMaintenance] = rescale(model.CriterionMaintenance, maintenanceRaw(set))
	scores[model.CriterionLinks] = rescale(model.CriterionLinks, linksRaw(set))
	scores[model.CriterionMedia] = rescale(model.CriterionMedia, mediaRaw(set))
	scores[model.CriterionLanguage] = rescale(model.CriterionLanguage, languageScore(set.Language))
	scores[model.CriterionRevision] = revisionRaw(set)
	scores[model.CriterionIntegration] = integrationRaw(set)

	total := 0.0
	for _, criterion := range model.WeightedCriteria {
		total += scores[criterion]
	}

	return &model.FinalResult{
		Title:     title,
		Total:     int(clamp(math.Round(total), 0, 100)),
		Tier:      model.TierFor(int(clamp(math.Round(total), 0, 100))),
		Scores:    scores,
		Details:   *set,
		Notes:     consolidateNotes(set),
		Timestamp: time.Now().UTC(),
	}
}

// rescale maps a raw analyzer score onto the criterion's weight and
// clamps the result to [0, weight].
func rescale(criterion model.Criterion, raw float64) float64 {
	weight := criterion.Weight()
	maxRaw := rawMax[criterion]
	if maxRaw == 0 {
		return 0
	}
	return clamp(raw/maxRaw*weight, 0, weight)
}

// referenceAdjusted applies the layered adjustments on top of the raw
// reference score: citation completeness, source-type mix, count
// bucket, and source-language breadth. The result stays on the 0-25
// scale.
func referenceAdjusted(result *model.ReferenceResult) float64 {
	if result == nil {
		return 0
	}
	d := result.Details
	adjusted := result.Score

	if d.FlaggedIncomplete > 0 {
		adjusted -= min(float64(d.FlaggedIncomplete)*0.15, 2)
	}

	adjusted += min(float64(d.Types.Book)*0.2, 1)
	adjusted += min(float64(d.Types.Journal)*0.2, 1)
	if d.Types.Web > d.Types.Book+d.Types.Journal+d.Types.News {
		adjusted -= 0.5
	}

	if d.WikidataCitations > 0 {
		adjusted += min(float64(d.WikidataCitations)*0.25, 1)
	}

	switch d.Bucket {
	case model.BucketUnder10:
		adjusted -= 2
	case model.BucketBetween10And20:
		adjusted -= 1
	case model.BucketBetween20And50:
	case model.BucketAbove50:
		adjusted += 0.5
	}

	if d.Languages.Distinct() >= 2 {
		adjusted += 0.5
	}

	return clamp(adjusted, 0, 25)
}

// languageScore derives the 0-10 language subscore from the flat count
// record. Every deduction is individually capped so a single runaway
// count cannot zero the subscore on its own.
func languageScore(result *model.LanguageResult) float64 {
	if result == nil {
		return 0
	}
	r := result.Details
	score := 10.0

	score -= min(float64(r.MachineTranslationSignals)*0.1, 2)
	score -= min(float64(r.WeakStyleSignals)*0.1, 2)
	score -= min(float64(r.GrammarViolations)*0.15, 2)

	if r.LongSentences > 5 {
		score -= min(float64(r.LongSentences-5)*0.2, 1.5)
	}
	if r.EmptyParagraphs > 2 {
		score -= min(float64(r.EmptyParagraphs-2)*0.3, 1)
	}
	if r.FillerWords > 10 {
		score -= min(float64(r.FillerWords-10)*0.05, 1)
	}

	score -= min(float64(r.PrepositionStarts)*0.08, 1.5)
	score -= min(float64(r.NarrativeWeakness)*0.12, 1.5)
	score -= min(float64(r.RedundantSentences)*0.25, 2)

	if r.PunctuationScore > 70 {
		score += 0.5
	}

	return clamp(score, 0, 10)
}

// consolidateNotes concatenates every analyzer's notes in a fixed
// order, so identical analysis sets always yield identical sequences.
func consolidateNotes(set *model.AnalysisSet) []string {
	notes := make([]string, 0)

	appendFrom := func(source []string) {
		notes = append(notes, source...)
	}

	if set.Structure != nil {
		appendFrom(set.Structure.Notes)
	}
	if set.References != nil {
		appendFrom(set.References.Notes)
	}
	if set.Media != nil {
		appendFrom(set.Media.Notes)
	}
	if set.Links != nil {
		appendFrom(set.Links.Notes)
	}
	if set.Grammar != nil {
		appendFrom(set.Grammar.Notes)
	}
	if set.Maintenance != nil {
		appendFrom(set.Maintenance.Notes)
	}
	if set.Language != nil {
		appendFrom(set.Language.Notes)
	}
	if set.Revision != nil {
		appendFrom(set.Revision.Notes)
	}
	if set.Integration != nil {
		appendFrom(set.Integration.Notes)
	}

	return notes
}

func structureRaw(set *model.AnalysisSet) float64 {
	if set.Structure == nil {
		return 0
	}
	return set.Structure.Score
}

func maintenanceRaw(set *model.AnalysisSet) float64 {
	if set.Maintenance == nil {
		return 0
	}
	return set.Maintenance.Score
}

func linksRaw(set *model.AnalysisSet) float64 {
	if set.Links == nil {
		return 0
	}
	return set.Links.Score
}

func mediaRaw(set *model.AnalysisSet) float64 {
	if set.Media == nil {
		return 0
	}
	return set.Media.Score
}

func revisionRaw(set *model.AnalysisSet) float64 {
	if set.Revision == nil {
		return 0
	}
	return clamp(set.Revision.Score, 0, 10)
}

func integrationRaw(set *model.AnalysisSet) float64 {
	if set.Integration == nil {
		return 0
	}
	return clamp(set.Integration.Score, 0, 10)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
