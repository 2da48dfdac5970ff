package user

import "gorm.io/gorm"

// User is an authentication account. Everything social hangs off the
// profile.Profile linked to it, not off the user itself.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
}
