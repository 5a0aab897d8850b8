package arenadb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/roastarena/backend/pkg/arena"
)

// RoastDao is a data access object that maps directly to the 'roast_index' table in PostgreSQL.
// Stake and pool amounts are NUMERIC(78,0): wide enough for any uint256,
// carried as decimal strings on the Go side.
type RoastDao struct {
	bun.BaseModel `bun:"table:roast_index,alias:ri"`
	RoastID       int64     `bun:"roast_id,pk"`
	Creator       string    `bun:"creator,notnull,type:varchar(42)"`
	RoastStake    string    `bun:"roast_stake,notnull,type:numeric(78,0)"`
	VoteStake     string    `bun:"vote_stake,notnull,type:numeric(78,0)"`
	OpenUntil     int64     `bun:"open_until,notnull"`
	VoteUntil     int64     `bun:"vote_until,notnull"`
	State         string    `bun:"state,notnull,type:varchar(10)"`
	TxHash        string    `bun:"tx_hash,type:varchar(66)"`
	BlockNumber   int64     `bun:"block_number,notnull"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`

	// Settlement fields, null until the roast settles.
	NumWinners       *int64  `bun:"num_winners"`
	RoasterPool      *string `bun:"roaster_pool,type:numeric(78,0)"`
	VoterPool        *string `bun:"voter_pool,type:numeric(78,0)"`
	WinnerVoterCount *int64  `bun:"winner_voter_count"`

	// Joined from profiles on reads, never written here.
	CreatorUsername string `bun:"creator_username,scanonly"`
}

// ParticipantDao is a data access object that maps directly to the 'participant_index' table in PostgreSQL.
type ParticipantDao struct {
	bun.BaseModel `bun:"table:participant_index,alias:pi"`
	RoastID       int64  `bun:"roast_id,pk"`
	Address       string `bun:"address,pk,type:varchar(42)"`
	TxHash        string `bun:"tx_hash,type:varchar(66)"`
}

// SyncCursorDao is a data access object that maps directly to the 'sync_cursor' table in PostgreSQL.
// One row per engine instance name; holds the last fully projected height.
type SyncCursorDao struct {
	bun.BaseModel `bun:"table:sync_cursor"`
	Name          string    `bun:"name,pk,type:varchar(100)"`
	LastHeight    int64     `bun:"last_height,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}

// ParticipantRoastDao is the participant-history join row: membership plus
// the joined roast's timestamps, state and stakes.
type ParticipantRoastDao struct {
	RoastID    int64  `bun:"roast_id"`
	State      string `bun:"state"`
	OpenUntil  int64  `bun:"open_until"`
	VoteUntil  int64  `bun:"vote_until"`
	RoastStake string `bun:"roast_stake"`
	VoteStake  string `bun:"vote_stake"`
	NumWinners *int64 `bun:"num_winners"`
}

func toRoastDao(r *arena.Roast) *RoastDao {
	return &RoastDao{
		RoastID:     r.RoastID,
		Creator:     r.Creator,
		RoastStake:  r.RoastStake,
		VoteStake:   r.VoteStake,
		OpenUntil:   r.OpenUntil,
		VoteUntil:   r.VoteUntil,
		State:       string(r.State),
		TxHash:      r.TxHash,
		BlockNumber: r.BlockNumber,
	}
}

func toRoast(dao *RoastDao) *arena.Roast {
	return &arena.Roast{
		RoastID:          dao.RoastID,
		Creator:          dao.Creator,
		RoastStake:       dao.RoastStake,
		VoteStake:        dao.VoteStake,
		OpenUntil:        dao.OpenUntil,
		VoteUntil:        dao.VoteUntil,
		State:            arena.State(dao.State),
		NumWinners:       dao.NumWinners,
		RoasterPool:      dao.RoasterPool,
		VoterPool:        dao.VoterPool,
		WinnerVoterCount: dao.WinnerVoterCount,
		TxHash:           dao.TxHash,
		BlockNumber:      dao.BlockNumber,
		CreatedAt:        dao.CreatedAt,
		CreatorUsername:  dao.CreatorUsername,
	}
}

func toParticipantDao(p *arena.Participant) *ParticipantDao {
	return &ParticipantDao{
		RoastID: p.RoastID,
		Address: p.Address,
		TxHash:  p.TxHash,
	}
}
