package manager

import (
	"context"
	"errors"
	"fmt"

	"acmm/internal/assets"
	"acmm/internal/failure"
	"acmm/internal/installer"
	"acmm/internal/logging"
	"acmm/internal/preflight"
)

// ItemResult is the outcome of one batch item.
type ItemResult struct {
	Asset *assets.Asset
	// Installed is the asset at its new location after a successful
	// install.
	Installed *assets.Asset
	Outcome   failure.Outcome
	Err       error
}

// BatchReport collects the per-item outcomes of a batch. Canceled is set
// when the batch stopped early; items never attempted are not listed.
type BatchReport struct {
	Items    []ItemResult
	Canceled bool
}

// Count returns the number of items with outcome o.
func (r BatchReport) Count(o failure.Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}
	return n
}

func (r BatchReport) Succeeded() int { return r.Count(failure.OutcomeSucceeded) }
func (r BatchReport) Skipped() int   { return r.Count(failure.OutcomeSkipped) }
func (r BatchReport) Failed() int    { return r.Count(failure.OutcomeFailed) }

// Observer receives batch progress. Any field may be nil.
type Observer struct {
	ItemStarted func(index, total int, asset *assets.Asset)
	FileCopied  func(rel string)
	ItemDone    func(ItemResult)
}

func (o *Observer) started(index, total int, asset *assets.Asset) {
	if o != nil && o.ItemStarted != nil {
		o.ItemStarted(index, total, asset)
	}
}

func (o *Observer) done(result ItemResult) {
	if o != nil && o.ItemDone != nil {
		o.ItemDone(result)
	}
}

func (o *Observer) fileFunc() installer.ProgressFunc {
	if o == nil || o.FileCopied == nil {
		return nil
	}
	return o.FileCopied
}

// Install copies one asset into the game root under the mutation lock.
func (m *Manager) Install(ctx context.Context, asset *assets.Asset, method installer.Method, onFile installer.ProgressFunc) (*assets.Asset, error) {
	unlock, err := m.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return m.installer.Install(ctx, asset, method, onFile)
}

// RequiredSpace returns the free bytes a batch install needs: the
// configured minimum, or twice the payload size.
func (m *Manager) RequiredSpace(list []*assets.Asset) (int64, error) {
	if m.cfg.Install.MinFreeBytes > 0 {
		return m.cfg.Install.MinFreeBytes, nil
	}
	var total int64
	for _, a := range list {
		size, err := a.Size()
		if err != nil {
			return 0, fmt.Errorf("size of %s: %w", a.ID(), err)
		}
		total += size
	}
	return total * 2, nil
}

// InstallAll installs every asset under the mutation lock. Per-item
// failures are recorded and the batch continues. The returned error is
// reserved for conditions that prevent the batch from starting.
func (m *Manager) InstallAll(ctx context.Context, list []*assets.Asset, method installer.Method, obs *Observer) (BatchReport, error) {
	unlock, err := m.acquire()
	if err != nil {
		return BatchReport{}, err
	}
	defer unlock()

	need, err := m.RequiredSpace(list)
	if err != nil {
		return BatchReport{}, err
	}
	m.logger.Debug("checking free space", logging.Bytes("required", need))
	if err := preflight.EnsureFreeSpace(m.root, need); err != nil {
		return BatchReport{}, err
	}

	return m.runBatch(ctx, "install", list, obs, func(ctx context.Context, a *assets.Asset) (*assets.Asset, error) {
		return m.installer.Install(ctx, a, method, obs.fileFunc())
	}), nil
}

// RemoveAll removes every asset under the mutation lock. Refused targets
// are recorded as failures and the batch continues.
func (m *Manager) RemoveAll(ctx context.Context, list []*assets.Asset, obs *Observer) (BatchReport, error) {
	unlock, err := m.acquire()
	if err != nil {
		return BatchReport{}, err
	}
	defer unlock()

	return m.runBatch(ctx, "remove", list, obs, func(ctx context.Context, a *assets.Asset) (*assets.Asset, error) {
		return nil, m.remove(ctx, a)
	}), nil
}

func (m *Manager) runBatch(ctx context.Context, op string, list []*assets.Asset, obs *Observer, apply func(context.Context, *assets.Asset) (*assets.Asset, error)) BatchReport {
	var report BatchReport
	for i, asset := range list {
		if ctx.Err() != nil {
			report.Canceled = true
			break
		}
		obs.started(i, len(list), asset)
		itemCtx := logging.WithAsset(ctx, asset.Kind().String(), asset.ID())
		out, err := apply(itemCtx, asset)
		result := ItemResult{Asset: asset, Installed: out, Outcome: failure.Classify(err), Err: err}
		report.Items = append(report.Items, result)
		obs.done(result)

		switch result.Outcome {
		case failure.OutcomeCanceled:
			report.Canceled = true
		case failure.OutcomeFailed:
			logger := logging.WithContext(itemCtx, m.logger)
			attrs := []logging.Attr{
				logging.String(logging.FieldPath, asset.Path()),
				logging.Error(err),
				logging.String(logging.FieldImpact, "asset left unchanged, batch continues"),
			}
			if failure.IsFatal(err) {
				logging.ErrorWithContext(logger, op+" failed", "batch_item_fatal", append(attrs,
					logging.String(logging.FieldErrorHint, "this kind cannot be handled on its own"))...)
			} else {
				logging.WarnWithContext(logger, op+" failed", "batch_item_failed", append(attrs,
					logging.String(logging.FieldErrorHint, hintFor(err)))...)
			}
		}
		if report.Canceled {
			break
		}
	}
	m.logger.Info(op+" batch finished",
		logging.Int("succeeded", report.Succeeded()),
		logging.Int("skipped", report.Skipped()),
		logging.Int("failed", report.Failed()),
		logging.Bool("canceled", report.Canceled),
	)
	return report
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, failure.ErrUnsafeTarget):
		return "target resolves outside the game directory or does not match the asset id"
	case errors.Is(err, failure.ErrNotFound):
		return "the asset disappeared before it could be processed"
	default:
		return "check permissions and free space of the game directory"
	}
}
