// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobminer/internal/dedup"
	"github.com/jonathan/jobminer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStageReport outputs the record counts of one completed stage.
func (p *Printer) PrintStageReport(stage string, in, out, dropped, flagged int, elapsed time.Duration) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records in:   %d\n", in))
	sb.WriteString(fmt.Sprintf("Records out:  %d\n", out))
	if dropped > 0 {
		sb.WriteString(fmt.Sprintf("Dropped:      %d\n", dropped))
	}
	if flagged > 0 {
		sb.WriteString(fmt.Sprintf("Flagged:      %d\n", flagged))
	}
	sb.WriteString(fmt.Sprintf("Elapsed:      %s", elapsed.Round(time.Millisecond)))

	p.printBox(fmt.Sprintf("STAGE %s", strings.ToUpper(stage)), sb.String())
}

// PrintDedupReport outputs a summary of the removed duplicates, grouped
// by the pass that caught them.
func (p *Printer) PrintDedupReport(audit []dedup.AuditEntry) {
	if len(audit) == 0 {
		p.printBox("DEDUPLICATION", "No duplicates found")
		return
	}

	byPass := make(map[string]int)
	for _, entry := range audit {
		byPass[string(entry.Pass)]++
	}
	passes := make([]string, 0, len(byPass))
	for pass := range byPass {
		passes = append(passes, pass)
	}
	sort.Strings(passes)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Removed %d duplicates:\n\n", len(audit)))
	for _, pass := range passes {
		sb.WriteString(fmt.Sprintf("  %-10s %d\n", pass, byPass[pass]))
	}
	sb.WriteString("\n")

	count := min(len(audit), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := audit[i]
		sb.WriteString(fmt.Sprintf("• %s → %s (%s)\n", shortID(entry.RemovedID), shortID(entry.SurvivorID), entry.Pass))
	}
	if len(audit) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(audit)-maxItemsToShow))
	}

	p.printBox("DEDUPLICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareerLevels outputs the distribution of assigned career levels.
func (p *Printer) PrintCareerLevels(records []types.JobRecord) {
	if len(records) == 0 {
		return
	}

	counts := make(map[types.CareerLevel]int)
	ambiguous := 0
	for _, rec := range records {
		counts[rec.CareerLevel]++
		if rec.IsAmbiguous {
			ambiguous++
		}
	}

	var sb strings.Builder
	for _, level := range []types.CareerLevel{types.CareerEntry, types.CareerMid, types.CareerSenior, types.CareerManagement} {
		sb.WriteString(fmt.Sprintf("%-12s %d\n", level, counts[level]))
	}
	sb.WriteString(fmt.Sprintf("\nAmbiguous:   %d", ambiguous))

	p.printBox("CAREER LEVELS", sb.String())
}

// PrintClusters outputs the discovered clusters with their sizes.
func (p *Printer) PrintClusters(clusters []types.Cluster) {
	if len(clusters) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d clusters:\n\n", len(clusters)))

	count := min(len(clusters), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := clusters[i]
		sb.WriteString(fmt.Sprintf("#%d  %d jobs\n", c.ClusterID, c.Size()))
	}
	if len(clusters) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more clusters", len(clusters)-maxItemsToShow))
	}

	p.printBox("JOB CLUSTERS", sb.String())
}

// PrintKeywords outputs the curated keywords grouped by category.
func (p *Printer) PrintKeywords(keywords []types.Keyword) {
	if len(keywords) == 0 {
		return
	}

	byCategory := make(map[types.KeywordCategory][]string)
	for _, kw := range keywords {
		byCategory[kw.Category] = append(byCategory[kw.Category], kw.Text)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Curated %d keywords:\n\n", len(keywords)))
	for _, cat := range types.AllKeywordCategories {
		texts, ok := byCategory[cat]
		if !ok {
			continue
		}
		joined := strings.Join(texts, ", ")
		if len(joined) > 40 {
			joined = joined[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-15s %s\n", cat+":", joined))
	}

	p.printBox("KEYWORD DICTIONARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the final record count and coverage of a run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunSummary(runID string, records, clusters int, coverage float64) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", shortID(runID)))
	sb.WriteString(fmt.Sprintf("Jobs:      %d\n", records))
	sb.WriteString(fmt.Sprintf("Clusters:  %d\n", clusters))
	sb.WriteString(fmt.Sprintf("Coverage:  %.1f%%", coverage*100))

	p.printBox("RUN COMPLETE", sb.String())
}

// shortID truncates a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
