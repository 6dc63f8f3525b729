package model

// Criterion identifies one scored quality dimension.
type Criterion string

// Scored criteria. Structure through Language make up the weighted
// 100-point total; Revision and Integration are informational subscores
// reported alongside it.
const (
	CriterionStructure   Criterion = "structure"
	CriterionReferences  Criterion = "references"
	CriterionMaintenance Criterion = "maintenance"
	CriterionLinks       Criterion = "links"
	CriterionMedia       Criterion = "media"
	CriterionLanguage    Criterion = "language"
	CriterionRevision    Criterion = "revision"
	CriterionIntegration Criterion = "integration"
)

// WeightedCriteria lists the six criteria that contribute to the total,
// in report order. The order is fixed so reports and note concatenation
// are reproducible across runs.
var WeightedCriteria = []Criterion{
	CriterionStructure,
	CriterionReferences,
	CriterionMaintenance,
	CriterionLinks,
	CriterionMedia,
	CriterionLanguage,
}

// InformationalCriteria lists the subscores reported outside the
// 100-point sum.
var InformationalCriteria = []Criterion{
	CriterionRevision,
	CriterionIntegration,
}

// criterionWeights maps each criterion to its maximum contribution.
// The six weighted criteria sum to exactly 100.
var criterionWeights = map[Criterion]float64{
	CriterionStructure:   25,
	CriterionReferences:  25,
	CriterionMaintenance: 15,
	CriterionLinks:       15,
	CriterionMedia:       10,
	CriterionLanguage:    10,
	CriterionRevision:    10,
	CriterionIntegration: 10,
}

// Weight returns the criterion's maximum score contribution.
// Unknown criteria weigh zero.
func (c Criterion) Weight() float64 {
	return criterionWeights[c]
}

// String returns the criterion name.
func (c Criterion) String() string {
	return string(c)
}
