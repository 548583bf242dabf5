package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/weiihann/parbench/bench"
)

func TestSummarizeBoundaries(t *testing.T) {
	comparisons := []bench.Comparison{
		{Name: "s", SizeMB: 99, Speedup: 1.0},
		{Name: "m1", SizeMB: 100, Speedup: 2.0},
		{Name: "m2", SizeMB: 399, Speedup: 4.0},
		{Name: "l", SizeMB: 400, Speedup: 5.0},
	}

	summaries := Summarize(comparisons)
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	if summaries[0].Count != 1 || summaries[0].MeanSpeedup != 1.0 {
		t.Errorf("small = %+v, want count 1 mean 1.0", summaries[0])
	}
	if summaries[1].Count != 2 || summaries[1].MeanSpeedup != 3.0 {
		t.Errorf("medium = %+v, want count 2 mean 3.0", summaries[1])
	}
	if summaries[2].Count != 1 || summaries[2].MeanSpeedup != 5.0 {
		t.Errorf("large = %+v, want count 1 mean 5.0", summaries[2])
	}
}

func TestSummarizeBucketOrder(t *testing.T) {
	// Input is not size-ordered; output classes must be.
	comparisons := []bench.Comparison{
		{SizeMB: 500, Speedup: 3.0},
		{SizeMB: 50, Speedup: 1.5},
		{SizeMB: 150, Speedup: 2.0},
	}

	summaries := Summarize(comparisons)
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	wantMeans := []float64{1.5, 2.0, 3.0}
	for i, want := range wantMeans {
		if math.Abs(summaries[i].MeanSpeedup-want) > 1e-9 {
			t.Errorf("summary %d mean = %v, want %v",
				i, summaries[i].MeanSpeedup, want)
		}
		if summaries[i].Count != 1 {
			t.Errorf("summary %d count = %d, want 1", i, summaries[i].Count)
		}
	}
}

func TestSummarizeOmitsEmptyBuckets(t *testing.T) {
	summaries := Summarize([]bench.Comparison{{SizeMB: 500, Speedup: 2.0}})

	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if !strings.HasPrefix(summaries[0].Label, "large") {
		t.Errorf("label = %q, want large bucket", summaries[0].Label)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("got %d summaries for empty input, want 0", len(got))
	}
}

func TestGenerateTable(t *testing.T) {
	comparisons := []bench.Comparison{
		{
			Name:            "a.flac",
			SizeMB:          50,
			SerialSeconds:   3,
			ParallelSeconds: 1.5,
			SerialMBps:      40,
			ParallelMBps:    80,
			Speedup:         2,
		},
		{
			Name:          "b.flac",
			SizeMB:        500,
			SerialSeconds: 6,
			// Parallel elapsed never showed up in the tool output.
		},
	}
	skips := []bench.Skip{
		{Name: "c.flac", SizeMB: 20, Mode: "serial", Reason: "timeout: exceeded 5m0s"},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, comparisons, skips, Options{Plain: true}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"a.flac", "2.00x", "3.00s", "1.50s",
		"skipped c.flac (20M): serial run: timeout: exceeded 5m0s",
		"small (<100MB): 1 samples, mean speedup 2.00x",
		"large (>=400MB): 1 samples, mean speedup 0.00x",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, output)
		}
	}

	// Unmeasured parallel time and ratio render as dashes.
	if !strings.Contains(output, "| b.flac | 500M | 6.00s | - | - | - | - |") {
		t.Errorf("unmeasured row rendered wrong:\n%s", output)
	}
}

func TestGenerateSkipsOnly(t *testing.T) {
	skips := []bench.Skip{
		{Name: "a.flac", SizeMB: 10, Mode: "serial", Reason: "execution failed: exit status 1"},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, nil, skips, Options{Plain: true}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(buf.String(), "skipped a.flac") {
		t.Errorf("skip line missing:\n%s", buf.String())
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, nil, nil, Options{}); err == nil {
		t.Error("expected error for empty results")
	}
}

func TestGenerateJSON(t *testing.T) {
	comparisons := []bench.Comparison{
		{Name: "a.flac", SizeMB: 150, SerialSeconds: 4, ParallelSeconds: 2, Speedup: 2},
	}
	skips := []bench.Skip{
		{Name: "b.flac", SizeMB: 10, Mode: "parallel", Reason: "timeout: exceeded 1s"},
	}

	var buf bytes.Buffer
	if err := GenerateJSON(&buf, comparisons, skips); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(parsed.Comparisons) != 1 || parsed.Comparisons[0].Name != "a.flac" {
		t.Errorf("comparisons = %+v", parsed.Comparisons)
	}
	if len(parsed.Skips) != 1 || parsed.Skips[0].Name != "b.flac" {
		t.Errorf("skips = %+v", parsed.Skips)
	}
	if len(parsed.Buckets) != 1 || parsed.Buckets[0].Count != 1 {
		t.Errorf("buckets = %+v", parsed.Buckets)
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{formatSeconds(0), "-"},
		{formatSeconds(1.5), "1.50s"},
		{formatRate(0), "-"},
		{formatRate(123.456), "123.46"},
		{formatSpeedup(0), "-"},
		{formatSpeedup(2), "2.00x"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
