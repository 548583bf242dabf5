// Package bench orchestrates serial-vs-parallel comparison runs over the
// sample corpus, one sample at a time.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/weiihann/parbench/corpus"
	"github.com/weiihann/parbench/harness"
)

// Comparison is the completed measurement for one sample. It exists only
// when both runs succeeded and is never mutated after being emitted. A zero
// throughput means the tool's output lacked that metric; a zero Speedup
// means the ratio was unmeasurable, not that the modes tied.
type Comparison struct {
	Name            string  `json:"name"`
	SizeMB          int64   `json:"size_mb"`
	SerialSeconds   float64 `json:"serial_seconds"`
	ParallelSeconds float64 `json:"parallel_seconds"`
	SerialMBps      float64 `json:"serial_mbps"`
	ParallelMBps    float64 `json:"parallel_mbps"`
	Speedup         float64 `json:"speedup"`
}

// Skip records a sample dropped from the comparison and why.
type Skip struct {
	Name   string `json:"name"`
	SizeMB int64  `json:"size_mb"`
	Mode   string `json:"mode"`
	Reason string `json:"reason"`
}

// Executor runs the analysis tool once for a sample in a given mode.
// *harness.Runner is the production implementation.
type Executor interface {
	Execute(
		ctx context.Context,
		sample corpus.Sample,
		mode harness.Mode,
	) (*harness.Output, error)
}

// Runner drives both modes over the corpus strictly sequentially, so
// nothing but the tool's own internal concurrency touches the timings.
type Runner struct {
	exec       Executor
	cooldown   time.Duration
	timeLabel  string
	speedLabel string
	logger     *slog.Logger
}

// NewRunner creates a Runner. timeLabel and speedLabel are the phrases the
// tool prints in front of its run-time and throughput values.
func NewRunner(
	exec Executor,
	cooldown time.Duration,
	timeLabel, speedLabel string,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		exec:       exec,
		cooldown:   cooldown,
		timeLabel:  timeLabel,
		speedLabel: speedLabel,
		logger:     logger,
	}
}

// measurement holds the metrics extracted from one run's output.
type measurement struct {
	seconds    float64
	hasSeconds bool
	mbps       float64
}

// RunSample benchmarks one sample in both modes: serial first, then a
// cooldown pause, then parallel. Exactly one of the returns is non-nil.
// A failed serial run skips the sample without attempting the parallel run.
func (r *Runner) RunSample(
	ctx context.Context,
	sample corpus.Sample,
) (*Comparison, *Skip) {
	serial, skip := r.runMode(ctx, sample, harness.ModeSerial)
	if skip != nil {
		return nil, skip
	}

	if !serial.hasSeconds {
		return nil, &Skip{
			Name:   sample.Name,
			SizeMB: sample.SizeMB(),
			Mode:   harness.ModeSerial.String(),
			Reason: fmt.Sprintf("no %q value in output", r.timeLabel),
		}
	}

	// Let caches and thermal state settle before the opposing mode runs,
	// so the second run is not measured against a warmed-up machine.
	if !r.pause(ctx) {
		return nil, &Skip{
			Name:   sample.Name,
			SizeMB: sample.SizeMB(),
			Mode:   harness.ModeParallel.String(),
			Reason: ctx.Err().Error(),
		}
	}

	parallel, skip := r.runMode(ctx, sample, harness.ModeParallel)
	if skip != nil {
		return nil, skip
	}

	// A parallel run whose output lacked the run-time value still yields a
	// record, pinned to the unmeasurable-ratio sentinel below.
	speedup := 0.0
	if parallel.seconds > 0 {
		speedup = serial.seconds / parallel.seconds
	}

	return &Comparison{
		Name:            sample.Name,
		SizeMB:          sample.SizeMB(),
		SerialSeconds:   serial.seconds,
		ParallelSeconds: parallel.seconds,
		SerialMBps:      serial.mbps,
		ParallelMBps:    parallel.mbps,
		Speedup:         speedup,
	}, nil
}

// RunAll benchmarks every sample in order. Per-sample failures become
// Skips; only cancellation stops the sweep early, and whatever completed
// by then is still returned alongside the context error.
func (r *Runner) RunAll(
	ctx context.Context,
	samples []corpus.Sample,
) ([]Comparison, []Skip, error) {
	comparisons := make([]Comparison, 0, len(samples))

	var skips []Skip

	for i, sample := range samples {
		if err := ctx.Err(); err != nil {
			return comparisons, skips, err
		}

		r.logger.Info("benchmarking sample",
			slog.Int("index", i+1),
			slog.Int("total", len(samples)),
			slog.String("sample", sample.Name),
			slog.Int64("size_mb", sample.SizeMB()),
		)

		record, skip := r.RunSample(ctx, sample)
		if skip != nil {
			r.logger.Warn("sample skipped",
				slog.String("sample", sample.Name),
				slog.String("mode", skip.Mode),
				slog.String("reason", skip.Reason),
			)

			skips = append(skips, *skip)

			continue
		}

		r.logger.Info("sample measured",
			slog.String("sample", sample.Name),
			slog.Float64("speedup", record.Speedup),
		)

		comparisons = append(comparisons, *record)
	}

	return comparisons, skips, nil
}

func (r *Runner) runMode(
	ctx context.Context,
	sample corpus.Sample,
	mode harness.Mode,
) (measurement, *Skip) {
	out, err := r.exec.Execute(ctx, sample, mode)
	if err != nil {
		return measurement{}, &Skip{
			Name:   sample.Name,
			SizeMB: sample.SizeMB(),
			Mode:   mode.String(),
			Reason: err.Error(),
		}
	}

	var m measurement
	m.seconds, m.hasSeconds = harness.ExtractMetric(out.Text, r.timeLabel)
	m.mbps, _ = harness.ExtractMetric(out.Text, r.speedLabel)

	return m, nil
}

// pause waits out the cooldown, or returns false if the context is
// cancelled first.
func (r *Runner) pause(ctx context.Context) bool {
	if r.cooldown <= 0 {
		return ctx.Err() == nil
	}

	select {
	case <-time.After(r.cooldown):
		return true
	case <-ctx.Done():
		return false
	}
}
