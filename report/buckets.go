package report

import "github.com/weiihann/parbench/bench"

// Size class boundaries in whole megabytes. Half-open on the left: a 100MB
// sample is medium, a 400MB sample is large.
const (
	smallMaxMB  = 100
	mediumMaxMB = 400
)

var bucketLabels = []string{
	"small (<100MB)",
	"medium (100-400MB)",
	"large (>=400MB)",
}

// BucketSummary aggregates the speedups of one size class.
type BucketSummary struct {
	Label       string  `json:"label"`
	Count       int     `json:"count"`
	MeanSpeedup float64 `json:"mean_speedup"`
}

// Summarize groups comparisons into small/medium/large size classes and
// computes each class's arithmetic-mean speedup. Classes with no members
// are left out entirely. The input is never mutated; summaries are
// recomputed fresh on every call.
func Summarize(comparisons []bench.Comparison) []BucketSummary {
	groups := make([][]float64, len(bucketLabels))

	for _, c := range comparisons {
		i := bucketIndex(c.SizeMB)
		groups[i] = append(groups[i], c.Speedup)
	}

	summaries := make([]BucketSummary, 0, len(bucketLabels))

	for i, speedups := range groups {
		if len(speedups) == 0 {
			continue
		}

		summaries = append(summaries, BucketSummary{
			Label:       bucketLabels[i],
			Count:       len(speedups),
			MeanSpeedup: mean(speedups),
		})
	}

	return summaries
}

func bucketIndex(sizeMB int64) int {
	switch {
	case sizeMB < smallMaxMB:
		return 0
	case sizeMB < mediumMaxMB:
		return 1
	default:
		return 2
	}
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}

	return sum / float64(len(vals))
}
