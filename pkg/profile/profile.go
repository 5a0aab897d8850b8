// Package profile holds the off-chain identity domain: wallet profiles
// and the text content attached to roasts. None of this data comes from
// the ledger; wallets submit it directly through the API.
package profile

import "time"

// Profile is a wallet's display identity. The address is the identity;
// there is no separate account or credential.
type Profile struct {
	Address   string    `json:"address"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoastContent is the text a participant submitted for a roast. One
// entry per (roast, author) pair; resubmitting replaces the text.
type RoastContent struct {
	ID        int64     `json:"id"`
	RoastID   int64     `json:"roast_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// AuthorUsername is joined from profiles on reads.
	AuthorUsername string `json:"author_username,omitempty"`
}

// UpsertProfileRequest is the payload for creating or updating a profile.
type UpsertProfileRequest struct {
	Address   string `json:"address"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// SubmitContentRequest is the payload for attaching roast text.
type SubmitContentRequest struct {
	RoastID int64  `json:"roast_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}
