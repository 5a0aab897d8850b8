package arena

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Decode maps a raw log entry to a typed arena event.
//
// A log whose first topic is not one of the five known event signatures
// is not an error: it returns (nil, false, nil) and the caller drops it.
// A log that matches a known signature but carries a malformed payload is
// a decode fault: the caller skips that single entry and keeps going.
func Decode(lg types.Log) (Event, bool, error) {
	if len(lg.Topics) == 0 {
		return nil, false, nil
	}

	switch lg.Topics[0] {
	case ArenaABI.Events["RoastCreated"].ID:
		ev, err := decodeCreated(lg)
		return ev, err == nil, err
	case ArenaABI.Events["ParticipantJoined"].ID:
		ev, err := decodeJoined(lg)
		return ev, err == nil, err
	case ArenaABI.Events["VoteCast"].ID:
		ev, err := decodeVoteCast(lg)
		return ev, err == nil, err
	case ArenaABI.Events["RoastSettled"].ID:
		ev, err := decodeSettled(lg)
		return ev, err == nil, err
	case ArenaABI.Events["RoastCancelled"].ID:
		ev, err := decodeCancelled(lg)
		return ev, err == nil, err
	default:
		return nil, false, nil
	}
}

func decodeCreated(lg types.Log) (Event, error) {
	if len(lg.Topics) != 3 {
		return nil, fmt.Errorf("RoastCreated: expected 3 topics, got %d", len(lg.Topics))
	}
	vals, err := ArenaABI.Events["RoastCreated"].Inputs.NonIndexed().Unpack(lg.Data)
	if err != nil {
		return nil, fmt.Errorf("RoastCreated: unpack data: %w", err)
	}
	return &RoastCreated{
		RoastID:     new(big.Int).SetBytes(lg.Topics[1].Bytes()),
		Creator:     topicAddress(lg, 2),
		RoastStake:  vals[0].(*big.Int),
		VoteStake:   vals[1].(*big.Int),
		OpenUntil:   vals[2].(*big.Int),
		VoteUntil:   vals[3].(*big.Int),
		TxHash:      lg.TxHash,
		BlockNumber: lg.BlockNumber,
	}, nil
}

func decodeJoined(lg types.Log) (Event, error) {
	if len(lg.Topics) != 3 {
		return nil, fmt.Errorf("ParticipantJoined: expected 3 topics, got %d", len(lg.Topics))
	}
	return &ParticipantJoined{
		RoastID:     new(big.Int).SetBytes(lg.Topics[1].Bytes()),
		Participant: topicAddress(lg, 2),
		TxHash:      lg.TxHash,
	}, nil
}

func decodeVoteCast(lg types.Log) (Event, error) {
	if len(lg.Topics) != 4 {
		return nil, fmt.Errorf("VoteCast: expected 4 topics, got %d", len(lg.Topics))
	}
	return &VoteCast{
		RoastID:   new(big.Int).SetBytes(lg.Topics[1].Bytes()),
		Voter:     topicAddress(lg, 2),
		Candidate: topicAddress(lg, 3),
	}, nil
}

func decodeSettled(lg types.Log) (Event, error) {
	if len(lg.Topics) != 2 {
		return nil, fmt.Errorf("RoastSettled: expected 2 topics, got %d", len(lg.Topics))
	}
	vals, err := ArenaABI.Events["RoastSettled"].Inputs.NonIndexed().Unpack(lg.Data)
	if err != nil {
		return nil, fmt.Errorf("RoastSettled: unpack data: %w", err)
	}
	return &RoastSettled{
		RoastID:          new(big.Int).SetBytes(lg.Topics[1].Bytes()),
		NumWinners:       vals[0].(*big.Int),
		RoasterPool:      vals[1].(*big.Int),
		VoterPool:        vals[2].(*big.Int),
		WinnerVoterCount: vals[3].(*big.Int),
	}, nil
}

func decodeCancelled(lg types.Log) (Event, error) {
	if len(lg.Topics) != 2 {
		return nil, fmt.Errorf("RoastCancelled: expected 2 topics, got %d", len(lg.Topics))
	}
	vals, err := ArenaABI.Events["RoastCancelled"].Inputs.NonIndexed().Unpack(lg.Data)
	if err != nil {
		return nil, fmt.Errorf("RoastCancelled: unpack data: %w", err)
	}
	return &RoastCancelled{
		RoastID: new(big.Int).SetBytes(lg.Topics[1].Bytes()),
		Reason:  vals[0].(string),
	}, nil
}

func topicAddress(lg types.Log, i int) common.Address {
	return common.BytesToAddress(lg.Topics[i].Bytes())
}
