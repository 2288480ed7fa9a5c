// Package telemetry configures OpenTelemetry tracing for the dev server and
// turns finished rebuild spans into build history records.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ sdktrace.SpanProcessor = (*HistoryBridge)(nil)

// HistoryBridge implements sdktrace.SpanProcessor and records every ended
// rebuild span in the build history.
type HistoryBridge struct {
	history ports.BuildHistory
	logger  ports.Logger
}

// NewHistoryBridge returns a bridge writing to history. Write failures are
// logged and never interrupt the dev server.
func NewHistoryBridge(history ports.BuildHistory, logger ports.Logger) *HistoryBridge {
	return &HistoryBridge{history: history, logger: logger}
}

// OnStart does nothing; records are written once the build has finished.
func (b *HistoryBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd converts a rebuild span into a build record.
func (b *HistoryBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if s.Name() != domain.SpanRebuild {
		return
	}

	rec, err := recordFromSpan(s)
	if err != nil {
		b.logger.Warn("build history: " + err.Error())
		return
	}

	if _, err := b.history.Record(context.Background(), rec); err != nil {
		b.logger.Warn("build history: " + err.Error())
	}
}

// ForceFlush does nothing.
func (b *HistoryBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing; the history is closed by its owner.
func (b *HistoryBridge) Shutdown(_ context.Context) error {
	return nil
}

func recordFromSpan(s sdktrace.ReadOnlySpan) (domain.BuildRecord, error) {
	rec := domain.BuildRecord{
		StartedAt:  s.StartTime(),
		FinishedAt: s.EndTime(),
	}

	found := false
	for _, kv := range s.Attributes() {
		if string(kv.Key) != domain.AttrPlatform {
			continue
		}
		p, err := domain.ParsePlatform(kv.Value.AsString())
		if err != nil {
			return rec, zerr.With(err, "span", s.Name())
		}
		rec.Platform = p
		found = true
	}
	if !found {
		return rec, zerr.With(zerr.New("rebuild span has no platform"), "span", s.Name())
	}

	if s.Status().Code == codes.Error {
		rec.Error = s.Status().Description
		if rec.Error == "" {
			rec.Error = "build failed"
		}
	}
	return rec, nil
}
