package indexer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roastarena/backend/internal/metrics"
	"github.com/roastarena/backend/pkg/arenadb"
	"github.com/roastarena/backend/pkg/chain"
	"github.com/roastarena/backend/pkg/config"
)

// LogSource is the engine's view of the ledger: a confirmed height and
// the raw contract logs for a block range. Implemented by chain.Client.
type LogSource interface {
	Height(ctx context.Context) (uint64, error)
	Events(ctx context.Context, from, to uint64) ([]types.Log, error)
}

// Engine is the synchronization loop. It polls the ledger on a fixed
// cadence, decodes arena events and projects them into the index,
// persisting the cursor only after an entire window succeeds. A single
// goroutine runs all cycles; a tick arriving while a cycle is in flight
// is dropped, never queued.
type Engine struct {
	source LogSource
	store  arenadb.IndexStore
	cfg    config.IndexerConfig
	logger *zap.Logger

	// cursor is the last fully projected block height. Valid only once
	// haveCursor is set; it moves in lockstep with the persisted row.
	cursor     uint64
	haveCursor bool
	// window is the current block range per log query, shrunk when the
	// provider rejects a range and grown back on success.
	window uint64

	synced atomic.Bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewEngine creates the synchronization engine.
func NewEngine(source LogSource, store arenadb.IndexStore, cfg config.IndexerConfig, logger *zap.Logger) *Engine {
	window := cfg.MaxWindow
	if window == 0 {
		window = 1
	}
	return &Engine{
		source: source,
		store:  store,
		cfg:    cfg,
		window: window,
		logger: logger.With(
			zap.String("component", "indexer"),
			zap.String("run_id", uuid.New().String()),
		),
		stopCh: make(chan struct{}),
	}
}

// Start launches the poll loop. It returns immediately; cycles run on a
// background goroutine until Stop is called or the context is cancelled.
func (e *Engine) Start(ctx context.Context) {
	e.logger.Info("starting synchronization engine",
		zap.Duration("poll_interval", e.cfg.PollInterval()),
		zap.Uint64("max_window", e.cfg.MaxWindow),
		zap.String("cursor_name", e.cfg.CursorName))

	e.wg.Add(1)
	go e.loop(ctx)
}

// Stop signals the loop to exit and blocks until the in-flight cycle,
// if any, has finished. The cursor is left wherever the last completed
// cycle put it.
func (e *Engine) Stop() {
	close(e.stopCh)
	e.wg.Wait()
	e.logger.Info("synchronization engine stopped")
}

// Synced reports whether the engine has completed at least one cycle
// that reached the confirmed head. Used by the readiness probe.
func (e *Engine) Synced() bool {
	return e.synced.Load()
}

func (e *Engine) loop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.PollInterval())
	defer ticker.Stop()

	// Run one cycle up front rather than waiting a full interval.
	e.cycle(ctx)

	for {
		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.cycle(ctx)
			// A tick that fired while the cycle ran is stale; drop it
			// so a slow cycle never builds a backlog.
			select {
			case <-ticker.C:
			default:
			}
		}
	}
}

func (e *Engine) cycle(ctx context.Context) {
	start := time.Now()
	err := e.runCycle(ctx)
	metrics.ScanDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.ScanCyclesTotal.WithLabelValues("success").Inc()
	case ctx.Err() != nil:
		metrics.ScanCyclesTotal.WithLabelValues("cancelled").Inc()
	default:
		metrics.ScanCyclesTotal.WithLabelValues("error").Inc()
		metrics.ErrorsTotal.WithLabelValues("indexer", "cycle").Inc()
		e.logger.Error("scan cycle failed, cursor unchanged", zap.Error(err))
	}
}

// runCycle performs one scan: compute the window [cursor+1, head], fetch
// and project it in sub-ranges, and persist the cursor at head only if
// every sub-range succeeded. Any failure leaves the cursor untouched so
// the next cycle retries the same window.
func (e *Engine) runCycle(ctx context.Context) error {
	head, err := e.source.Height(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch confirmed height: %w", err)
	}

	if !e.haveCursor {
		cursor, err := e.loadCursor(ctx, head)
		if err != nil {
			return err
		}
		e.cursor = cursor
		e.haveCursor = true
	}

	if head <= e.cursor {
		e.synced.Store(true)
		return nil
	}

	from := e.cursor + 1
	for from <= head {
		to := from + e.window - 1
		if to > head {
			to = head
		}

		logs, err := e.source.Events(ctx, from, to)
		if err != nil {
			if chain.IsRangeTooLarge(err) && e.window > 1 {
				e.shrinkWindow()
				continue
			}
			return fmt.Errorf("failed to fetch logs [%d, %d]: %w", from, to, err)
		}

		for i := range logs {
			if err := e.project(ctx, &logs[i]); err != nil {
				return fmt.Errorf("failed to project log at block %d: %w", logs[i].BlockNumber, err)
			}
		}

		e.logger.Debug("projected sub-range",
			zap.Uint64("from", from),
			zap.Uint64("to", to),
			zap.Int("logs", len(logs)))

		from = to + 1
		e.growWindow()
	}

	if err := e.store.SetCursor(ctx, e.cfg.CursorName, head); err != nil {
		return fmt.Errorf("failed to persist cursor: %w", err)
	}
	e.cursor = head
	e.synced.Store(true)
	metrics.LastProcessedHeight.Set(float64(head))

	e.logger.Info("scan cycle complete", zap.Uint64("height", head))
	return nil
}

func (e *Engine) shrinkWindow() {
	e.window /= 2
	if e.window == 0 {
		e.window = 1
	}
	metrics.WindowSize.Set(float64(e.window))
	e.logger.Warn("provider rejected block range, shrinking window",
		zap.Uint64("window", e.window))
}

func (e *Engine) growWindow() {
	if e.window >= e.cfg.MaxWindow {
		return
	}
	e.window *= 2
	if e.window > e.cfg.MaxWindow {
		e.window = e.cfg.MaxWindow
	}
	metrics.WindowSize.Set(float64(e.window))
}
