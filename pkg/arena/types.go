package arena

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// State is the stored lifecycle state of a roast. The engine only ever
// writes the two terminal transitions; there is no stored mid-life
// "voting" state because no on-chain event marks it. Consumers derive
// the live phase from the timestamps instead (see PhaseAt).
type State string

const (
	StateOpen      State = "OPEN"
	StateSettled   State = "SETTLED"
	StateCancelled State = "CANCELLED"
)

// Phase is the live phase of a roast derived from its timestamps against
// wall time. It is computed at read time and never persisted.
type Phase string

const (
	PhaseRoasting Phase = "ROASTING"
	PhaseVoting   Phase = "VOTING"
	PhaseEnded    Phase = "ENDED"
)

// Roast is one game instance as projected into the index. Stake and pool
// amounts are wei values carried as decimal strings; they may exceed the
// 64-bit range and must never pass through floating point.
type Roast struct {
	RoastID    int64
	Creator    string
	RoastStake string
	VoteStake  string
	OpenUntil  int64
	VoteUntil  int64
	State      State

	// Settlement fields, nil until the roast settles.
	NumWinners       *int64
	RoasterPool      *string
	VoterPool        *string
	WinnerVoterCount *int64

	TxHash      string
	BlockNumber int64
	CreatedAt   time.Time

	// CreatorUsername is joined from the profiles table on reads; empty
	// if the creator has no profile.
	CreatorUsername string
}

// PhaseAt derives the live phase of the roast at the given time. For a
// settled or cancelled roast the phase is always ENDED regardless of the
// timestamps.
func (r *Roast) PhaseAt(now time.Time) Phase {
	if r.State != StateOpen {
		return PhaseEnded
	}
	ts := now.Unix()
	switch {
	case ts < r.OpenUntil:
		return PhaseRoasting
	case ts < r.VoteUntil:
		return PhaseVoting
	default:
		return PhaseEnded
	}
}

// Participant is one (roast, wallet) membership row.
type Participant struct {
	RoastID int64
	Address string
	TxHash  string
}

// Settlement carries the payout figures delivered by a RoastSettled event.
type Settlement struct {
	NumWinners       int64
	RoasterPool      string
	VoterPool        string
	WinnerVoterCount int64
}

// NormalizeAddress lowercases a hex address for storage and lookups.
func NormalizeAddress(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// NormalizeAddressString lowercases a user-supplied hex address string.
func NormalizeAddressString(addr string) string {
	return strings.ToLower(addr)
}
