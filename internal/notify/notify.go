// Package notify owns the two outbound paths: normal digest delivery and
// out-of-band urgent alerts.
package notify

import (
	"context"

	kit "trendwatch/internal/transport"
	"trendwatch/pkg/logx"
)

// Result is a delivery outcome plus diagnostic text for the orchestrator.
type Result struct {
	OK         bool
	Diagnostic string
}

// Delivery sends the composed digest. It fails closed: missing destination
// credentials are reported as failure without attempting a network call.
type Delivery struct {
	adapter kit.Adapter // nil when telegram credentials are absent
	target  kit.ChatTarget
	log     logx.Logger
}

func NewDelivery(adapter kit.Adapter, target kit.ChatTarget, log logx.Logger) *Delivery {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Delivery{adapter: adapter, target: target, log: log}
}

func (d *Delivery) Deliver(ctx context.Context, text string) Result {
	if d.adapter == nil || d.target.ChatID == 0 {
		d.log.Error("delivery not configured (missing bot token or chat id)")
		return Result{Diagnostic: "delivery not configured"}
	}

	_, err := d.adapter.SendText(ctx, d.target, text, &kit.SendOptions{
		ParseMode:      "HTML",
		DisablePreview: true,
	})
	if err != nil {
		d.log.Error("digest delivery failed", logx.Err(err))
		return Result{Diagnostic: err.Error()}
	}
	d.log.Info("digest delivered", logx.Int64("chat_id", d.target.ChatID))
	return Result{OK: true}
}

// Alerter sends short urgent messages when the pipeline fails in a way that
// should page a human. Best-effort: its own failure is logged and swallowed,
// never re-raised and never re-alerted.
type Alerter struct {
	adapter kit.Adapter
	target  kit.ChatTarget
	log     logx.Logger
}

func NewAlerter(adapter kit.Adapter, target kit.ChatTarget, log logx.Logger) *Alerter {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Alerter{adapter: adapter, target: target, log: log}
}

func (a *Alerter) Alert(ctx context.Context, text string) {
	if a.adapter == nil || a.target.ChatID == 0 {
		a.log.Error("alert undeliverable (no alert channel configured)", logx.String("alert", text))
		return
	}

	// Plain parse mode: alert text often carries raw error strings that
	// would break HTML parsing.
	_, err := a.adapter.SendText(ctx, a.target, "🚨 "+text, &kit.SendOptions{DisablePreview: true})
	if err != nil {
		a.log.Warn("alert send failed", logx.Err(err))
		return
	}
	a.log.Info("alert sent", logx.Int64("chat_id", a.target.ChatID))
}
