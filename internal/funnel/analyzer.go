package funnel

import (
	"context"
	"time"

	"github.com/capilize/capilize/internal/capture"
)

// DefaultAnalysisDelay is how long the simulated analysis takes.
const DefaultAnalysisDelay = 3000 * time.Millisecond

// Analyzer runs the analysis step for a captured photo. The photo may be
// empty when the visitor skipped capture.
type Analyzer interface {
	Analyze(ctx context.Context, photo capture.Photo) error
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, photo capture.Photo) error

func (f AnalyzerFunc) Analyze(ctx context.Context, photo capture.Photo) error { return f(ctx, photo) }

// DelayAnalyzer stands in for real analysis by waiting a fixed duration.
type DelayAnalyzer struct {
	delay time.Duration
	after func(time.Duration) <-chan time.Time
}

// NewDelayAnalyzer returns an analyzer that waits d. A non-positive d
// selects DefaultAnalysisDelay.
func NewDelayAnalyzer(d time.Duration) *DelayAnalyzer {
	if d <= 0 {
		d = DefaultAnalysisDelay
	}
	return &DelayAnalyzer{delay: d, after: time.After}
}

// Delay returns the configured wait.
func (a *DelayAnalyzer) Delay() time.Duration {
	return a.delay
}

func (a *DelayAnalyzer) Analyze(ctx context.Context, _ capture.Photo) error {
	select {
	case <-a.after(a.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
