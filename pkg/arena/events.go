package arena

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// The arena contract event surface. This must stay in sync with the
// deployed RoastArena contract.
const arenaABIJSON = `[
  {"type":"event","name":"RoastCreated","inputs":[
    {"name":"roastId","type":"uint256","indexed":true},
    {"name":"creator","type":"address","indexed":true},
    {"name":"roastStake","type":"uint256","indexed":false},
    {"name":"voteStake","type":"uint256","indexed":false},
    {"name":"openUntil","type":"uint256","indexed":false},
    {"name":"voteUntil","type":"uint256","indexed":false}]},
  {"type":"event","name":"ParticipantJoined","inputs":[
    {"name":"roastId","type":"uint256","indexed":true},
    {"name":"participant","type":"address","indexed":true}]},
  {"type":"event","name":"VoteCast","inputs":[
    {"name":"roastId","type":"uint256","indexed":true},
    {"name":"voter","type":"address","indexed":true},
    {"name":"candidate","type":"address","indexed":true}]},
  {"type":"event","name":"RoastSettled","inputs":[
    {"name":"roastId","type":"uint256","indexed":true},
    {"name":"numWinners","type":"uint256","indexed":false},
    {"name":"roasterPool","type":"uint256","indexed":false},
    {"name":"voterPool","type":"uint256","indexed":false},
    {"name":"winnerVoterCount","type":"uint256","indexed":false}]},
  {"type":"event","name":"RoastCancelled","inputs":[
    {"name":"roastId","type":"uint256","indexed":true},
    {"name":"reason","type":"string","indexed":false}]}
]`

// ArenaABI is the parsed contract ABI used by the decoder and by tests
// constructing synthetic logs.
var ArenaABI = mustParseABI(arenaABIJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("arena: invalid ABI: " + err.Error())
	}
	return parsed
}

// Event is one decoded arena contract event.
type Event interface {
	// Name returns the on-chain event name.
	Name() string
}

// RoastCreated announces a new roast. Emitted exactly once per roastId.
type RoastCreated struct {
	RoastID     *big.Int
	Creator     common.Address
	RoastStake  *big.Int
	VoteStake   *big.Int
	OpenUntil   *big.Int
	VoteUntil   *big.Int
	TxHash      common.Hash
	BlockNumber uint64
}

func (RoastCreated) Name() string { return "RoastCreated" }

// ParticipantJoined records a wallet joining a roast. The contract
// guarantees a wallet joins a given roast at most once.
type ParticipantJoined struct {
	RoastID     *big.Int
	Participant common.Address
	TxHash      common.Hash
}

func (ParticipantJoined) Name() string { return "ParticipantJoined" }

// VoteCast is informational only: tallying is the contract's job and the
// index only needs the settled outcome, so this event is never projected.
type VoteCast struct {
	RoastID   *big.Int
	Voter     common.Address
	Candidate common.Address
}

func (VoteCast) Name() string { return "VoteCast" }

// RoastSettled delivers the final payout figures for a roast.
type RoastSettled struct {
	RoastID          *big.Int
	NumWinners       *big.Int
	RoasterPool      *big.Int
	VoterPool        *big.Int
	WinnerVoterCount *big.Int
}

func (RoastSettled) Name() string { return "RoastSettled" }

// RoastCancelled marks a roast as cancelled. The reason is logged but
// not stored.
type RoastCancelled struct {
	RoastID *big.Int
	Reason  string
}

func (RoastCancelled) Name() string { return "RoastCancelled" }
