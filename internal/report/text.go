package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arwiki-tools/qualscan/internal/model"
)

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables the informational subscores and the full note
	// list instead of the trimmed summary.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the assessment in human-readable format.
func (w *TextWriter) Write(result *model.FinalResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeCriteria(&sb, result)
	w.writeNotes(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with article information.
func (w *TextWriter) writeHeader(sb *strings.Builder, result *model.FinalResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     ARTICLE QUALITY REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Article:   %s\n", result.Title))
	sb.WriteString(fmt.Sprintf("Analyzed:  %s\n", result.Timestamp.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Total:     %d/100\n", result.Total))
	sb.WriteString(fmt.Sprintf("Tier:      %s\n", result.Tier.Label()))
	sb.WriteString("\n")
}

// writeCriteria writes the per-criterion score breakdown.
func (w *TextWriter) writeCriteria(sb *strings.Builder, result *model.FinalResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CRITERIA\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, criterion := range model.WeightedCriteria {
		score := result.Scores[criterion]
		weight := criterion.Weight()
		sb.WriteString(fmt.Sprintf("  %-13s %5.1f / %-3.0f (%d%%)\n",
			criterionLabel(criterion)+":", score, weight, percentOf(score, weight)))
	}

	if w.verbose {
		sb.WriteString("\n")
		for _, criterion := range model.InformationalCriteria {
			sb.WriteString(fmt.Sprintf("  %-13s %5.1f / %-3.0f (informational)\n",
				criterionLabel(criterion)+":", result.Scores[criterion], criterion.Weight()))
		}
	}
	sb.WriteString("\n")
}

// writeNotes writes the numbered consolidated note list.
func (w *TextWriter) writeNotes(sb *strings.Builder, result *model.FinalResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("NOTES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(result.Notes) == 0 {
		sb.WriteString("  No major notes; the article is in good shape.\n\n")
		return
	}

	notes := result.Notes
	if !w.verbose && len(notes) > 10 {
		notes = notes[:10]
	}

	for i, note := range notes {
		sb.WriteString(fmt.Sprintf("  %2d. %s\n", i+1, note))
	}
	if trimmed := len(result.Notes) - len(notes); trimmed > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more (use verbose output to see all)\n", trimmed))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by qualscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
