package match

import (
	"time"

	"gorm.io/gorm"
)

// MatchInvitation is a pending challenge from one team to another. Accepting
// it creates the Match; any resolution deletes the invitation row.
type MatchInvitation struct {
	gorm.Model
	FromTeamID uint      `gorm:"not null;index" json:"from_team"`
	ToTeamID   uint      `gorm:"not null;index" json:"to_team"`
	TeamSize   int       `gorm:"not null;default:7" json:"team_size"`
	Location   string    `gorm:"size:255;not null" json:"location"`
	KickoffAt  time.Time `gorm:"not null" json:"date_time"`
}

func (mi *MatchInvitation) RequestID() uint {
	return mi.ID
}

// Match is a realized fixture between two teams.
type Match struct {
	gorm.Model
	HomeTeamID uint      `gorm:"not null;index" json:"home_team"`
	AwayTeamID uint      `gorm:"not null;index" json:"away_team"`
	TeamSize   int       `gorm:"not null;default:7" json:"team_size"`
	Location   string    `gorm:"size:255;not null" json:"location"`
	KickoffAt  time.Time `gorm:"not null" json:"date_time"`
}

// Vote responses.
const (
	VoteAccepted = "accepted"
	VoteRejected = "rejected"
	VoteMaybe    = "maybe"
)

// MatchVote records one profile's availability for one match. Re-voting
// overwrites the response; the pair is unique.
type MatchVote struct {
	gorm.Model
	MatchID   uint   `gorm:"not null;uniqueIndex:idx_match_vote" json:"match"`
	ProfileID uint   `gorm:"not null;uniqueIndex:idx_match_vote" json:"profile"`
	Response  string `gorm:"size:10;not null" json:"response"`
}

// MatchStats is one team's stat line for a played match.
type MatchStats struct {
	gorm.Model
	MatchID    uint    `gorm:"not null;uniqueIndex:idx_match_stats" json:"match"`
	TeamID     uint    `gorm:"not null;uniqueIndex:idx_match_stats" json:"team"`
	Score      int     `gorm:"not null;default:0" json:"score"`
	Shooting   int     `gorm:"not null;default:0" json:"shooting"`
	Attacks    int     `gorm:"not null;default:0" json:"attacks"`
	Possession float64 `gorm:"type:decimal(5,2);default:0" json:"possession"`
	Fouls      int     `gorm:"not null;default:0" json:"fouls"`
	Corners    int     `gorm:"not null;default:0" json:"corners"`
}

// CreateMatchInvitationRequest is the payload for challenging another team.
type CreateMatchInvitationRequest struct {
	FromTeamID uint      `json:"from_team" binding:"required"`
	ToTeamID   uint      `json:"to_team" binding:"required"`
	TeamSize   int       `json:"team_size" binding:"omitempty,gte=1,lte=11"`
	Location   string    `json:"location" binding:"required,max=255"`
	KickoffAt  time.Time `json:"date_time" binding:"required"`
}

// CastVoteRequest is the payload for voting on a match.
type CastVoteRequest struct {
	Response string `json:"vote" binding:"required,oneof=accepted rejected maybe"`
}

// RecordStatsRequest is the payload for recording one team's stat line.
type RecordStatsRequest struct {
	TeamID     uint    `json:"team" binding:"required"`
	Score      int     `json:"score" binding:"gte=0"`
	Shooting   int     `json:"shooting" binding:"gte=0"`
	Attacks    int     `json:"attacks" binding:"gte=0"`
	Possession float64 `json:"possession" binding:"gte=0,lte=100"`
	Fouls      int     `json:"fouls" binding:"gte=0"`
	Corners    int     `json:"corners" binding:"gte=0"`
}
