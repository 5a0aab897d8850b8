package indexer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roastarena/backend/pkg/arenadb"
)

// loadCursor resolves the starting cursor for this run. A persisted
// cursor always wins; on cold start the configured start height takes
// precedence, otherwise the engine begins a bounded lookback behind the
// confirmed head.
func (e *Engine) loadCursor(ctx context.Context, head uint64) (uint64, error) {
	cursor, err := e.store.GetCursor(ctx, e.cfg.CursorName)
	if err == nil {
		e.logger.Info("resuming from persisted cursor", zap.Uint64("cursor", cursor))
		return cursor, nil
	}
	if !errors.Is(err, arenadb.ErrCursorNotFound) {
		return 0, fmt.Errorf("failed to load cursor: %w", err)
	}

	if e.cfg.StartHeight > 0 {
		cursor = e.cfg.StartHeight - 1
		e.logger.Info("cold start at configured height",
			zap.Uint64("start_height", e.cfg.StartHeight))
		return cursor, nil
	}

	if head > e.cfg.LookbackBlocks {
		cursor = head - e.cfg.LookbackBlocks
	}
	e.logger.Info("cold start with lookback",
		zap.Uint64("head", head),
		zap.Uint64("lookback_blocks", e.cfg.LookbackBlocks),
		zap.Uint64("cursor", cursor))
	return cursor, nil
}
