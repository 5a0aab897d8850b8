package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/roastarena/backend/internal/metrics"
	"github.com/roastarena/backend/pkg/arena"
	"github.com/roastarena/backend/pkg/arenadb"
)

// errValueOutOfRange marks event fields that do not fit the index's
// int64 columns. Treated like an undecodable entry, not a store fault.
var errValueOutOfRange = errors.New("value out of range")

// project decodes a single log entry and applies it to the store. A
// malformed entry or an event for a roast the index has never seen is
// reported and skipped so one bad entry cannot wedge the cursor. A
// store failure or a settlement conflict returns an error and aborts
// the cycle.
func (e *Engine) project(ctx context.Context, lg *types.Log) error {
	ev, ok, err := arena.Decode(*lg)
	if err != nil {
		metrics.EventsSkipped.WithLabelValues("decode_fault").Inc()
		e.logger.Warn("skipping undecodable log entry",
			zap.Uint64("block", lg.BlockNumber),
			zap.String("tx_hash", lg.TxHash.Hex()),
			zap.Error(err))
		return nil
	}
	if !ok {
		metrics.EventsSkipped.WithLabelValues("unknown_event").Inc()
		return nil
	}

	switch ev := ev.(type) {
	case *arena.RoastCreated:
		err = e.projectCreated(ctx, ev)
	case *arena.ParticipantJoined:
		err = e.projectJoined(ctx, ev)
	case *arena.VoteCast:
		// Votes are tallied by the contract; the index only needs the
		// settled outcome.
		e.logger.Debug("vote cast",
			zap.String("roast_id", ev.RoastID.String()),
			zap.String("voter", arena.NormalizeAddress(ev.Voter)),
			zap.String("candidate", arena.NormalizeAddress(ev.Candidate)))
		return nil
	case *arena.RoastSettled:
		err = e.projectSettled(ctx, ev)
	case *arena.RoastCancelled:
		err = e.projectCancelled(ctx, ev)
	default:
		metrics.EventsSkipped.WithLabelValues("unknown_event").Inc()
		return nil
	}

	if errors.Is(err, errValueOutOfRange) {
		metrics.EventsSkipped.WithLabelValues("decode_fault").Inc()
		e.logger.Warn("skipping event with out-of-range field",
			zap.String("event", ev.Name()),
			zap.Uint64("block", lg.BlockNumber),
			zap.Error(err))
		return nil
	}
	if errors.Is(err, arenadb.ErrRoastNotFound) {
		// A terminal event arrived for a roast outside the scanned
		// range. Report and move on; the cycle must not stall on it.
		metrics.OrderingViolations.Inc()
		e.logger.Warn("event references unknown roast, skipping",
			zap.String("event", ev.Name()),
			zap.Uint64("block", lg.BlockNumber))
		return nil
	}
	if err != nil {
		return err
	}
	metrics.EventsProjected.WithLabelValues(ev.Name()).Inc()
	return nil
}

func (e *Engine) projectCreated(ctx context.Context, ev *arena.RoastCreated) error {
	if !ev.RoastID.IsInt64() || !ev.OpenUntil.IsInt64() || !ev.VoteUntil.IsInt64() {
		return fmt.Errorf("roast %s identifier or timestamp: %w", ev.RoastID, errValueOutOfRange)
	}
	roast := &arena.Roast{
		RoastID:     ev.RoastID.Int64(),
		Creator:     arena.NormalizeAddress(ev.Creator),
		RoastStake:  ev.RoastStake.String(),
		VoteStake:   ev.VoteStake.String(),
		OpenUntil:   ev.OpenUntil.Int64(),
		VoteUntil:   ev.VoteUntil.Int64(),
		State:       arena.StateOpen,
		TxHash:      ev.TxHash.Hex(),
		BlockNumber: int64(ev.BlockNumber),
	}
	if err := e.store.InsertRoast(ctx, roast); err != nil {
		return fmt.Errorf("failed to insert roast %d: %w", roast.RoastID, err)
	}
	e.logger.Info("roast created",
		zap.Int64("roast_id", roast.RoastID),
		zap.String("creator", roast.Creator))
	return nil
}

func (e *Engine) projectJoined(ctx context.Context, ev *arena.ParticipantJoined) error {
	if !ev.RoastID.IsInt64() {
		return fmt.Errorf("roast %s identifier: %w", ev.RoastID, errValueOutOfRange)
	}
	p := &arena.Participant{
		RoastID: ev.RoastID.Int64(),
		Address: arena.NormalizeAddress(ev.Participant),
		TxHash:  ev.TxHash.Hex(),
	}
	if err := e.store.InsertParticipant(ctx, p); err != nil {
		return fmt.Errorf("failed to insert participant for roast %d: %w", p.RoastID, err)
	}
	return nil
}

func (e *Engine) projectSettled(ctx context.Context, ev *arena.RoastSettled) error {
	if !ev.RoastID.IsInt64() || !ev.NumWinners.IsInt64() || !ev.WinnerVoterCount.IsInt64() {
		return fmt.Errorf("roast %s settlement counts: %w", ev.RoastID, errValueOutOfRange)
	}
	s := arena.Settlement{
		NumWinners:       ev.NumWinners.Int64(),
		RoasterPool:      ev.RoasterPool.String(),
		VoterPool:        ev.VoterPool.String(),
		WinnerVoterCount: ev.WinnerVoterCount.Int64(),
	}
	if err := e.store.MarkSettled(ctx, ev.RoastID.Int64(), s); err != nil {
		return fmt.Errorf("failed to settle roast %d: %w", ev.RoastID.Int64(), err)
	}
	e.logger.Info("roast settled",
		zap.Int64("roast_id", ev.RoastID.Int64()),
		zap.Int64("num_winners", s.NumWinners))
	return nil
}

func (e *Engine) projectCancelled(ctx context.Context, ev *arena.RoastCancelled) error {
	if !ev.RoastID.IsInt64() {
		return fmt.Errorf("roast %s identifier: %w", ev.RoastID, errValueOutOfRange)
	}
	if err := e.store.MarkCancelled(ctx, ev.RoastID.Int64()); err != nil {
		return fmt.Errorf("failed to cancel roast %d: %w", ev.RoastID.Int64(), err)
	}
	e.logger.Info("roast cancelled",
		zap.Int64("roast_id", ev.RoastID.Int64()),
		zap.String("reason", ev.Reason))
	return nil
}
