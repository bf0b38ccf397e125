package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldAssetID is the standardized key for asset identifiers.
	FieldAssetID = "asset_id"
	// FieldAssetKind is the standardized key for asset kinds (car, track, ...).
	FieldAssetKind = "asset_kind"
	// FieldPath is the standardized key for filesystem paths.
	FieldPath = "path"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the user what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

type assetContextKey struct{}

type assetContext struct {
	kind string
	id   string
}

// WithAsset returns a context tagged with the asset being processed.
func WithAsset(ctx context.Context, kind, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, assetContextKey{}, assetContext{kind: kind, id: id})
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	value, ok := ctx.Value(assetContextKey{}).(assetContext)
	if !ok {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if value.kind != "" {
		fields = append(fields, slog.String(FieldAssetKind, value.kind))
	}
	if value.id != "" {
		fields = append(fields, slog.String(FieldAssetID, value.id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(toArgs(fields)...)
}
