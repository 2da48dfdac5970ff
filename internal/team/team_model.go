package team

import (
	"gorm.io/gorm"
)

// Team is a named roster of profiles. A team only exists while it has members;
// removing or losing the last member deletes it.
type Team struct {
	gorm.Model
	Name   string  `gorm:"not null" json:"name"`
	Rating float64 `gorm:"default:0" json:"rating"`
}

// TeamMember is one profile's membership row. Admin rights are a flag on the
// membership, which makes admins a subset of members by construction.
type TeamMember struct {
	gorm.Model
	TeamID    uint `gorm:"uniqueIndex:idx_team_roster;not null" json:"team_id"`
	ProfileID uint `gorm:"uniqueIndex:idx_team_roster;not null" json:"profile_id"`
	IsAdmin   bool `gorm:"default:false" json:"is_admin"`
}

// TeamInvitation is a directed pending edge inviting a profile into a team.
// Like all pending requests it is deleted on resolution.
type TeamInvitation struct {
	gorm.Model
	FromProfileID uint `gorm:"uniqueIndex:idx_team_invitation;not null" json:"from_profile_id"`
	ToProfileID   uint `gorm:"uniqueIndex:idx_team_invitation;not null" json:"to_profile_id"`
	TeamID        uint `gorm:"uniqueIndex:idx_team_invitation;not null" json:"team_id"`
}

// RequestID implements request.Pending.
func (ti *TeamInvitation) RequestID() uint { return ti.ID }

// --- DTOs ---

// CreateTeamRequest creates a team with the caller as first member and admin.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
}

// UpdateTeamRequest renames a team.
type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
}

// CreateTeamInvitationRequest invites a friend into one of the caller's teams.
type CreateTeamInvitationRequest struct {
	ToProfileID uint `json:"to_profile" binding:"required"`
	TeamID      uint `json:"team" binding:"required"`
}
