package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arwiki-tools/qualscan/internal/config"
	"github.com/arwiki-tools/qualscan/internal/history"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Constants for score direction labels.
const (
	scoreDirectionImproved  = "improved"
	scoreDirectionDeclined  = "declined"
	scoreDirectionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command compares assessments with historical data stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [article-title]",
		Short: "Compare assessments with historical data",
		Long: `History displays differences between the current and previous assessments.

This command retrieves historical assessment data from the database and shows:
- How the total score and quality tier changed since the last assessment
- Per-criterion score deltas
- New improvement notes that appeared since the last assessment
- Resolved notes that are no longer raised

The comparison requires at least two assessments in the database for the
specified article. Use 'qualscan assess' to assess articles and save results.

Examples:
  # Compare latest two assessments for an article
  qualscan history القاهرة

  # List all assessment history for an article
  qualscan history --list القاهرة

  # Output comparison in JSON format
  qualscan history --json القاهرة

  # List all assessed articles in the database
  qualscan history --list-articles`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List assessment history for the specified article")
	cmd.Flags().BoolP("list-articles", "L", false,
		"List all assessed articles in the database")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-articles flag first (requires database but no title)
	listArticles, err := cmd.Flags().GetBool("list-articles")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database (unless --list-articles)
	var title string
	if !listArticles {
		if len(args) == 0 {
			return errors.New("article title is required (use --list-articles to see assessed articles)")
		}
		title = strings.TrimSpace(args[0])
		if title == "" {
			return errors.New("article title must not be empty")
		}
	}

	// Use XDG data directory for the database
	dbDir := config.XDGDataDir()

	store, err := history.Open(dbDir, history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Handle --list-articles flag
	if listArticles {
		return listAssessedArticles(ctx, store)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listAssessmentHistory(ctx, store, title)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return runComparison(ctx, store, title, jsonOutput)
}

// listAssessedArticles lists all articles that have assessment records in the database.
func listAssessedArticles(ctx context.Context, store *history.Store) error {
	titles, err := store.ListAssessedArticles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	if len(titles) == 0 {
		fmt.Println("No assessed articles found in the database.")
		fmt.Println("\nUse 'qualscan assess <title>' to assess an article.")
		return nil
	}

	fmt.Printf("Assessed articles (%d):\n\n", len(titles))
	for _, t := range titles {
		fmt.Printf("  • %s\n", t)
	}
	fmt.Println("\nUse 'qualscan history --list <title>' to see assessment history for an article.")

	return nil
}

// listAssessmentHistory lists all assessment records for a specific article.
func listAssessmentHistory(ctx context.Context, store *history.Store, title string) error {
	records, err := store.GetHistoryMetadata(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to get assessment history: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No assessment history found for %s\n", title)
		fmt.Println("\nUse 'qualscan assess' to assess this article.")
		return nil
	}

	fmt.Printf("Assessment history for %s (%d assessments):\n\n", title, len(records))
	fmt.Printf("  %-6s  %-20s  %-6s  %s\n", "ID", "Date", "Score", "Tier")
	fmt.Println("  " + strings.Repeat("-", 55))

	for _, meta := range records {
		fmt.Printf("  %-6d  %-20s  %-6d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Total,
			meta.Tier,
		)
	}

	fmt.Println("\nUse 'qualscan history <title>' to compare the latest two assessments.")

	return nil
}

// runComparison performs the actual comparison between assessments.
func runComparison(ctx context.Context, store *history.Store, title string, jsonOutput bool) error {
	results, err := store.GetAssessmentHistory(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to get assessment history: %w", err)
	}

	if len(results) == 0 {
		return fmt.Errorf("no assessment history found for %s", title)
	}
	if len(results) < 2 {
		return fmt.Errorf("at least 2 assessments are required for comparison (found %d)", len(results))
	}

	// Results are sorted newest first
	comparison := compareAssessments(results[1], results[0])

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two assessments.
type ComparisonResult struct {
	// Title is the assessed article.
	Title string `json:"title"`

	// Previous contains metadata about the previous assessment.
	Previous AssessmentSummary `json:"previous"`

	// Current contains metadata about the current assessment.
	Current AssessmentSummary `json:"current"`

	// TotalDelta is the change in total score.
	TotalDelta int `json:"total_delta"`

	// Direction is "improved", "declined", or "unchanged".
	Direction string `json:"direction"`

	// CriterionDeltas holds per-criterion score changes in report order.
	CriterionDeltas []CriterionDelta `json:"criterion_deltas"`

	// NewNotes contains notes raised in the current assessment but not the previous.
	NewNotes []string `json:"new_notes,omitempty"`

	// ResolvedNotes contains notes from the previous assessment no longer raised.
	ResolvedNotes []string `json:"resolved_notes,omitempty"`

	// UnchangedCount is the number of notes present in both assessments.
	UnchangedCount int `json:"unchanged_count"`
}

// AssessmentSummary contains metadata about one assessment for comparison display.
type AssessmentSummary struct {
	// Timestamp is when the assessment was performed.
	Timestamp time.Time `json:"timestamp"`

	// Total is the overall score out of 100.
	Total int `json:"total"`

	// Tier is the quality tier label.
	Tier string `json:"tier"`
}

// CriterionDelta describes the change in one criterion's subscore.
type CriterionDelta struct {
	// Criterion is the quality dimension.
	Criterion string `json:"criterion"`

	// Previous is the subscore from the previous assessment.
	Previous float64 `json:"previous"`

	// Current is the subscore from the current assessment.
	Current float64 `json:"current"`

	// Delta is Current minus Previous.
	Delta float64 `json:"delta"`
}

// compareAssessments compares two assessments and generates a comparison result.
func compareAssessments(previous, current *model.FinalResult) *ComparisonResult {
	result := &ComparisonResult{
		Title: current.Title,
		Previous: AssessmentSummary{
			Timestamp: previous.Timestamp,
			Total:     previous.Total,
			Tier:      previous.Tier.String(),
		},
		Current: AssessmentSummary{
			Timestamp: current.Timestamp,
			Total:     current.Total,
			Tier:      current.Tier.String(),
		},
		TotalDelta: current.Total - previous.Total,
	}

	switch {
	case result.TotalDelta > 0:
		result.Direction = scoreDirectionImproved
	case result.TotalDelta < 0:
		result.Direction = scoreDirectionDeclined
	default:
		result.Direction = scoreDirectionUnchanged
	}

	// Per-criterion deltas in the fixed report order
	criteria := make([]model.Criterion, 0, len(model.WeightedCriteria)+len(model.InformationalCriteria))
	criteria = append(criteria, model.WeightedCriteria...)
	criteria = append(criteria, model.InformationalCriteria...)

	for _, c := range criteria {
		prev := previous.Scores[c]
		curr := current.Scores[c]
		result.CriterionDeltas = append(result.CriterionDeltas, CriterionDelta{
			Criterion: c.String(),
			Previous:  prev,
			Current:   curr,
			Delta:     curr - prev,
		})
	}

	// Note diffing by exact text. Notes are deterministic per document
	// state, so a text match means the underlying issue is unchanged.
	previousNotes := make(map[string]bool, len(previous.Notes))
	for _, n := range previous.Notes {
		previousNotes[n] = true
	}
	currentNotes := make(map[string]bool, len(current.Notes))
	for _, n := range current.Notes {
		currentNotes[n] = true
	}

	for _, n := range current.Notes {
		if !previousNotes[n] {
			result.NewNotes = append(result.NewNotes, n)
		}
	}
	for _, n := range previous.Notes {
		if currentNotes[n] {
			result.UnchangedCount++
		} else {
			result.ResolvedNotes = append(result.ResolvedNotes, n)
		}
	}

	return result
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Assessment Comparison: %s\n", result.Title)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nQuality Status: %s\n", formatScoreDirection(result.Direction))

	fmt.Printf("\nPrevious assessment: %s (%d/100, %s)\n",
		result.Previous.Timestamp.Format("2006-01-02 15:04:05"),
		result.Previous.Total,
		result.Previous.Tier,
	)
	fmt.Printf("Current assessment:  %s (%d/100, %s)\n",
		result.Current.Timestamp.Format("2006-01-02 15:04:05"),
		result.Current.Total,
		result.Current.Tier,
	)

	fmt.Println("\nCriterion Scores:")
	fmt.Printf("  %-13s  %-10s  %-10s  %-10s\n", "Criterion", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 48))
	for _, d := range result.CriterionDeltas {
		fmt.Printf("  %-13s  %-10.1f  %-10.1f  %-10s\n",
			d.Criterion, d.Previous, d.Current, formatScoreDelta(d.Delta))
	}
	fmt.Println("  " + strings.Repeat("-", 48))
	fmt.Printf("  %-13s  %-10d  %-10d  %-10s\n", "total",
		result.Previous.Total, result.Current.Total, formatDelta(result.TotalDelta))

	if len(result.NewNotes) > 0 {
		fmt.Printf("\nNew Notes (%d):\n", len(result.NewNotes))
		for _, n := range result.NewNotes {
			fmt.Printf("  [+] %s\n", n)
		}
	}

	if len(result.ResolvedNotes) > 0 {
		fmt.Printf("\nResolved Notes (%d):\n", len(result.ResolvedNotes))
		for _, n := range result.ResolvedNotes {
			fmt.Printf("  [-] %s\n", n)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d notes\n", result.UnchangedCount)
	}

	return nil
}

// formatScoreDirection formats the score change direction for display.
func formatScoreDirection(direction string) string {
	switch direction {
	case scoreDirectionImproved:
		return "IMPROVED (score increased)"
	case scoreDirectionDeclined:
		return "DECLINED (score decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats an integer delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// formatScoreDelta formats a float delta with sign for display.
func formatScoreDelta(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.1f", delta)
	} else if delta < 0 {
		return fmt.Sprintf("%.1f", delta)
	}
	return "0.0"
}
