package app

import (
	"context"
	"fmt"
	"runtime/debug"

	"trendwatch/internal/digest"
	"trendwatch/pkg/logx"
)

// RunPipeline executes one full invocation: fetch every source in order,
// summarize each batch, compose the digest, deliver it.
//
// Failure policy (defined once, here):
//   - Per-stage failures are already contained inside the stages (empty
//     batches, fallback summaries, failed delivery result).
//   - Delivery failure alerts exactly once and returns an error; the daily
//     loop survives.
//   - A panic is truly unexpected: it is logged with its stack, alerted,
//     and re-raised; the process manager restarts us.
func (a *App) RunPipeline(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("pipeline panicked",
				logx.Any("panic", r),
				logx.Stack(string(debug.Stack())))
			a.alerter.Alert(ctx, fmt.Sprintf("daily trend pipeline crashed: %v", r))
			panic(r)
		}
	}()

	a.log.Info("starting daily trend scan", logx.Int("sources", len(a.sources)))

	sections := make([]digest.Section, 0, len(a.sources))
	total := 0
	for _, src := range a.sources {
		items := src.Fetch(ctx, a.limit)
		summaries := a.summarizer.Summarize(ctx, items)
		sections = append(sections, digest.Section{Label: src.Label(), Summaries: summaries})
		total += len(summaries)
	}
	a.log.Info("scan finished", logx.Int("items", total))

	msg := digest.Compose(sections)

	res := a.delivery.Deliver(ctx, msg)
	if !res.OK {
		a.alerter.Alert(ctx, "daily trend digest delivery failed: "+res.Diagnostic)
		return fmt.Errorf("deliver digest: %s", res.Diagnostic)
	}
	return nil
}
