package profilestore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/roastarena/backend/pkg/profile"
)

// ProfileDao is a data access object that maps directly to the 'profiles' table in PostgreSQL.
type ProfileDao struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`
	Address       string    `bun:"address,pk,type:varchar(42)"`
	Username      string    `bun:"username,notnull,type:varchar(32)"`
	AvatarURL     string    `bun:"avatar_url,type:varchar(200)"`
	Bio           string    `bun:"bio,type:varchar(160)"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}

// RoastContentDao is a data access object that maps directly to the 'roast_content' table in PostgreSQL.
// A (roast_id, author) pair is unique; resubmission replaces the text.
type RoastContentDao struct {
	bun.BaseModel `bun:"table:roast_content,alias:rc"`
	ID            int64     `bun:"id,pk,autoincrement"`
	RoastID       int64     `bun:"roast_id,notnull"`
	Author        string    `bun:"author,notnull,type:varchar(42)"`
	Content       string    `bun:"content,notnull,type:varchar(500)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`

	// Joined from profiles on reads.
	AuthorUsername string `bun:"author_username,scanonly"`
}

func toProfileDao(p *profile.Profile) *ProfileDao {
	return &ProfileDao{
		Address:   p.Address,
		Username:  p.Username,
		AvatarURL: p.AvatarURL,
		Bio:       p.Bio,
	}
}

func toProfile(dao *ProfileDao) *profile.Profile {
	return &profile.Profile{
		Address:   dao.Address,
		Username:  dao.Username,
		AvatarURL: dao.AvatarURL,
		Bio:       dao.Bio,
		UpdatedAt: dao.UpdatedAt,
	}
}

func toContentDao(c *profile.RoastContent) *RoastContentDao {
	return &RoastContentDao{
		RoastID: c.RoastID,
		Author:  c.Author,
		Content: c.Content,
	}
}

func toContent(dao *RoastContentDao) *profile.RoastContent {
	return &profile.RoastContent{
		ID:             dao.ID,
		RoastID:        dao.RoastID,
		Author:         dao.Author,
		Content:        dao.Content,
		CreatedAt:      dao.CreatedAt,
		AuthorUsername: dao.AuthorUsername,
	}
}
