package profile

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Position is an on-pitch role tag a player can advertise on their profile.
type Position string

const (
	PositionGoalkeeper Position = "GOALKEEPER"
	PositionDefender   Position = "DEFENDER"
	PositionMidfielder Position = "MIDFIELDER"
	PositionStriker    Position = "STRIKER"
	PositionAny        Position = "ANY"
)

// ValidPosition reports whether p is one of the enumerated role tags.
func ValidPosition(p Position) bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionStriker, PositionAny:
		return true
	}
	return false
}

// PositionList is the JSONB column holding a profile's advertised positions.
type PositionList []Position

func (p PositionList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan unmarshals a JSONB column into the slice.
func (p *PositionList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("PositionList: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, p)
}

// Profile is the social identity of a user: rating, positions, kit number and
// career counters. One profile per user. JoinDate is CreatedAt.
type Profile struct {
	gorm.Model
	UserID        uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	Rating        float64      `gorm:"default:0" json:"rating"`
	Positions     PositionList `gorm:"type:json" json:"positions"`
	KitNumber     int          `gorm:"default:10" json:"kit_number"`
	Goals         int          `gorm:"default:0" json:"goals"`
	Assists       int          `gorm:"default:0" json:"assists"`
	MVP           int          `gorm:"default:0" json:"mvp"`
	SetupComplete bool         `gorm:"default:false" json:"setup_complete"`
}

// Friendship is one symmetric friend edge. The pair is stored in canonical
// (low, high) order so the reverse edge can never coexist with it.
type Friendship struct {
	gorm.Model
	ProfileLowID  uint `gorm:"uniqueIndex:idx_friend_pair;not null" json:"profile_low_id"`
	ProfileHighID uint `gorm:"uniqueIndex:idx_friend_pair;not null" json:"profile_high_id"`
}

// CanonicalPair orders two profile ids into the (low, high) form Friendship rows use.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// --- DTOs ---

// SetupRequest completes a fresh profile with positions and a kit number.
type SetupRequest struct {
	Positions []Position `json:"positions" binding:"required,min=1"`
	KitNumber int        `json:"kit_number" binding:"required,gte=1,lte=99"`
}

// RecordsRequest increments career counters after a match.
type RecordsRequest struct {
	Goals   int  `json:"goals" binding:"gte=0"`
	Assists int  `json:"assists" binding:"gte=0"`
	MVP     bool `json:"mvp"`
}
