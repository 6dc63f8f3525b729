package report

import (
	"io"

	"github.com/arwiki-tools/qualscan/internal/model"
)

// Writer defines the interface for report output.
// Implementations write quality assessments in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the assessment to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.FinalResult) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write assessments, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the assessment to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.FinalResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// criterionLabel maps a criterion to its report display name.
func criterionLabel(c model.Criterion) string {
	switch c {
	case model.CriterionStructure:
		return "Structure"
	case model.CriterionReferences:
		return "References"
	case model.CriterionMaintenance:
		return "Maintenance"
	case model.CriterionLinks:
		return "Links"
	case model.CriterionMedia:
		return "Media"
	case model.CriterionLanguage:
		return "Language"
	case model.CriterionRevision:
		return "Revision"
	case model.CriterionIntegration:
		return "Integration"
	default:
		return string(c)
	}
}

// percentOf returns the criterion score as a whole percentage of its
// weight.
func percentOf(score, weight float64) int {
	if weight == 0 {
		return 0
	}
	return int(score/weight*100 + 0.5)
}
