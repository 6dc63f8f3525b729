package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/arwiki-tools/qualscan/internal/model"
)

// MarkdownWriter outputs assessments in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the assessment in Markdown format.
func (w *MarkdownWriter) Write(result *model.FinalResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeCriteria(md, result)
	w.writeNotes(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with article information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.FinalResult) {
	md.H1("Article Quality Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Article", result.Title},
			{"Analyzed", result.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Total", "**" + strconv.Itoa(result.Total) + "/100**"},
			{"Tier", result.Tier.Label()},
		},
	})
	md.PlainText("")

	w.writeAlert(md, result)
}

// writeAlert writes an appropriate alert based on the quality tier.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.FinalResult) {
	switch result.Tier {
	case model.TierFeatured, model.TierGood:
		md.Tip(fmt.Sprintf("The article scores %d/100 and meets a high editorial standard.", result.Total))
	case model.TierAdvanced:
		md.Note(fmt.Sprintf("The article scores %d/100; a focused revision could lift it further.", result.Total))
	case model.TierStart:
		md.Importantf("The article scores %d/100 and has clear coverage gaps.", result.Total)
	default:
		md.Warningf("The article scores %d/100 and needs substantial development.", result.Total)
	}
	md.PlainText("")
}

// writeCriteria writes the per-criterion score table and chart.
func (w *MarkdownWriter) writeCriteria(md *markdown.Markdown, result *model.FinalResult) {
	md.H2("Criteria")
	md.PlainText("")

	rows := make([][]string, 0, len(model.WeightedCriteria)+len(model.InformationalCriteria))
	for _, criterion := range model.WeightedCriteria {
		score := result.Scores[criterion]
		weight := criterion.Weight()
		rows = append(rows, []string{
			criterionLabel(criterion),
			fmt.Sprintf("%.1f / %.0f", score, weight),
			strconv.Itoa(percentOf(score, weight)) + "%",
		})
	}
	for _, criterion := range model.InformationalCriteria {
		rows = append(rows, []string{
			criterionLabel(criterion) + " (informational)",
			fmt.Sprintf("%.1f / %.0f", result.Scores[criterion], criterion.Weight()),
			strconv.Itoa(percentOf(result.Scores[criterion], criterion.Weight())) + "%",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Criterion", "Score", "Percent"},
		Rows:   rows,
	})
	md.PlainText("")

	if result.Total > 0 {
		w.writePieChart(md, result)
	}
}

// writePieChart writes a mermaid pie chart of the weighted score
// contributions.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.FinalResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Score Contribution by Criterion"),
		piechart.WithShowData(true),
	)

	for _, criterion := range model.WeightedCriteria {
		if score := result.Scores[criterion]; score > 0 {
			chart.LabelAndIntValue(criterionLabel(criterion), uint64(score+0.5))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeNotes writes the consolidated note list.
func (w *MarkdownWriter) writeNotes(md *markdown.Markdown, result *model.FinalResult) {
	md.H2("Notes")
	md.PlainText("")

	if len(result.Notes) == 0 {
		md.PlainText("No major notes; the article is in good shape.")
		md.PlainText("")
		return
	}

	md.BulletList(result.Notes...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by qualscan*")
}
