package friend

import (
	"gorm.io/gorm"
)

// FriendRequest is a directed pending edge between two profiles. The ordered
// pair is unique; the row disappears on accept, ignore and withdraw, so its
// presence alone means "pending".
type FriendRequest struct {
	gorm.Model
	FromProfileID uint `gorm:"uniqueIndex:idx_friend_request_pair;not null" json:"from_profile_id"`
	ToProfileID   uint `gorm:"uniqueIndex:idx_friend_request_pair;not null" json:"to_profile_id"`
}

// RequestID implements request.Pending.
func (fr *FriendRequest) RequestID() uint { return fr.ID }

// CreateFriendRequest is the request body for sending a friend request.
type CreateFriendRequest struct {
	ToProfileID uint `json:"to_profile" binding:"required"`
}
