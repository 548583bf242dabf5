// Package report formats comparison results into console tables and
// size-bucketed summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/weiihann/parbench/bench"
)

// Options control report rendering.
type Options struct {
	// Plain disables terminal styling.
	Plain bool
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	skip    lipgloss.Style
}

func newStyles(plain bool) styles {
	base := lipgloss.NewStyle()
	if plain {
		return styles{title: base, heading: base, skip: base}
	}

	return styles{
		title:   base.Bold(true),
		heading: base.Bold(true).Foreground(lipgloss.Color("6")),
		skip:    base.Foreground(lipgloss.Color("3")),
	}
}

// Generate writes the per-sample comparison table, the skipped-sample
// lines, and the bucket summary. Unmeasured values render as "-".
func Generate(
	w io.Writer,
	comparisons []bench.Comparison,
	skips []bench.Skip,
	opts Options,
) error {
	if len(comparisons) == 0 && len(skips) == 0 {
		return fmt.Errorf("no results to report")
	}

	st := newStyles(opts.Plain)

	fmt.Fprintln(w, st.title.Render("Serial vs Parallel Comparison"))
	fmt.Fprintln(w)

	if len(comparisons) > 0 {
		fmt.Fprintln(w, "| Sample | Size | Serial | Parallel "+
			"| Serial MB/s | Parallel MB/s | Speedup |")
		fmt.Fprintln(w, "|--------|------|--------|----------"+
			"|-------------|---------------|---------|")

		for _, c := range comparisons {
			fmt.Fprintf(w, "| %s | %dM | %s | %s | %s | %s | %s |\n",
				c.Name,
				c.SizeMB,
				formatSeconds(c.SerialSeconds),
				formatSeconds(c.ParallelSeconds),
				formatRate(c.SerialMBps),
				formatRate(c.ParallelMBps),
				formatSpeedup(c.Speedup),
			)
		}
	}

	if len(skips) > 0 {
		fmt.Fprintln(w)

		for _, s := range skips {
			line := fmt.Sprintf("skipped %s (%dM): %s run: %s",
				s.Name, s.SizeMB, s.Mode, s.Reason)
			fmt.Fprintln(w, st.skip.Render(line))
		}
	}

	if summaries := Summarize(comparisons); len(summaries) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.heading.Render("Mean speedup by size class"))

		for _, b := range summaries {
			fmt.Fprintf(w, "  %s: %d samples, mean speedup %.2fx\n",
				b.Label, b.Count, b.MeanSpeedup)
		}
	}

	return nil
}

// Report is the machine-readable output payload for --json mode.
type Report struct {
	Comparisons []bench.Comparison `json:"comparisons"`
	Skips       []bench.Skip       `json:"skips,omitempty"`
	Buckets     []BucketSummary    `json:"buckets,omitempty"`
}

// GenerateJSON writes the comparisons, skips, and bucket summaries as
// indented JSON.
func GenerateJSON(
	w io.Writer,
	comparisons []bench.Comparison,
	skips []bench.Skip,
) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(Report{
		Comparisons: comparisons,
		Skips:       skips,
		Buckets:     Summarize(comparisons),
	})
}

func formatSeconds(s float64) string {
	if s <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.2fs", s)
}

func formatRate(mbps float64) string {
	if mbps <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.2f", mbps)
}

func formatSpeedup(speedup float64) string {
	if speedup <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.2fx", speedup)
}
