package indexer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/roastarena/backend/pkg/arena"
)

var (
	testContract = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testCreator  = common.HexToAddress("0xAbCd00000000000000000000000000000000BeEf")
	testJoiner   = common.HexToAddress("0x2000000000000000000000000000000000000002")
)

func roastTopic(roastID int64) common.Hash {
	return common.BigToHash(big.NewInt(roastID))
}

func addrTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func createdLog(t *testing.T, roastID int64, creator common.Address, stake *big.Int, block uint64) types.Log {
	t.Helper()
	data, err := arena.ArenaABI.Events["RoastCreated"].Inputs.NonIndexed().Pack(
		stake, stake, big.NewInt(1000), big.NewInt(2000))
	require.NoError(t, err)
	return types.Log{
		Address:     testContract,
		Topics:      []common.Hash{arena.ArenaABI.Events["RoastCreated"].ID, roastTopic(roastID), addrTopic(creator)},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.HexToHash("0xaa"),
	}
}

func joinedLog(roastID int64, participant common.Address, block uint64) types.Log {
	return types.Log{
		Address:     testContract,
		Topics:      []common.Hash{arena.ArenaABI.Events["ParticipantJoined"].ID, roastTopic(roastID), addrTopic(participant)},
		BlockNumber: block,
		TxHash:      common.HexToHash("0xbb"),
	}
}

func settledLog(t *testing.T, roastID, numWinners int64, roasterPool, voterPool *big.Int, block uint64) types.Log {
	t.Helper()
	data, err := arena.ArenaABI.Events["RoastSettled"].Inputs.NonIndexed().Pack(
		big.NewInt(numWinners), roasterPool, voterPool, big.NewInt(numWinners))
	require.NoError(t, err)
	return types.Log{
		Address:     testContract,
		Topics:      []common.Hash{arena.ArenaABI.Events["RoastSettled"].ID, roastTopic(roastID)},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.HexToHash("0xcc"),
	}
}

func cancelledLog(t *testing.T, roastID int64, reason string, block uint64) types.Log {
	t.Helper()
	data, err := arena.ArenaABI.Events["RoastCancelled"].Inputs.NonIndexed().Pack(reason)
	require.NoError(t, err)
	return types.Log{
		Address:     testContract,
		Topics:      []common.Hash{arena.ArenaABI.Events["RoastCancelled"].ID, roastTopic(roastID)},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.HexToHash("0xdd"),
	}
}

func voteLog(roastID int64, voter, candidate common.Address, block uint64) types.Log {
	return types.Log{
		Address:     testContract,
		Topics:      []common.Hash{arena.ArenaABI.Events["VoteCast"].ID, roastTopic(roastID), addrTopic(voter), addrTopic(candidate)},
		BlockNumber: block,
		TxHash:      common.HexToHash("0xee"),
	}
}
