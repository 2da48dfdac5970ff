package team

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sidelines-app/sidelines/internal/profile"
	"github.com/sidelines-app/sidelines/internal/request"
)

// TeamRepository defines the data operations for teams, rosters and team
// invitations.
type TeamRepository interface {
	// Team operations
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetAllTeams(page, limit int) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error

	// Roster operations
	AddMember(member *TeamMember) error
	GetMember(teamID, profileID uint) (*TeamMember, error)
	ListMembers(teamID uint) ([]TeamMember, error)
	ListAdmins(teamID uint) ([]TeamMember, error)
	UpdateMember(member *TeamMember) error
	RemoveMember(teamID, profileID uint) error
	CountMembers(teamID uint) (int64, error)
	CountAdmins(teamID uint) (int64, error)
	IsMember(teamID, profileID uint) (bool, error)
	IsAdmin(teamID, profileID uint) (bool, error)

	// Invitation operations
	CreateInvitation(inv *TeamInvitation) error
	GetInvitationByID(id uint) (*TeamInvitation, error)
	GetInvitationByIDForUpdate(id uint) (*TeamInvitation, error)
	GetPendingInvitation(fromID, toID uint) (*TeamInvitation, error)
	ListInvitations(profileID uint, direction request.Direction) ([]TeamInvitation, error)
	DeleteInvitation(id uint) error
	DeleteInvitationsForTeam(teamID uint) error

	ProfileExists(id uint) (bool, error)
	AreFriends(a, b uint) (bool, error)

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team operations ---

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAllTeams(page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

// DeleteTeam removes the team together with its roster and any invitations
// still pointing at it.
func (r *teamRepository) DeleteTeam(id uint) error {
	if err := r.db.Unscoped().Where("team_id = ?", id).Delete(&TeamMember{}).Error; err != nil {
		return err
	}
	if err := r.DeleteInvitationsForTeam(id); err != nil {
		return err
	}
	return r.db.Unscoped().Delete(&Team{}, id).Error
}

// --- Roster operations ---

func (r *teamRepository) AddMember(member *TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) GetMember(teamID, profileID uint) (*TeamMember, error) {
	var member TeamMember
	err := r.db.Where("team_id = ? AND profile_id = ?", teamID, profileID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) ListMembers(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.Where("team_id = ?", teamID).Order("created_at asc").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepository) ListAdmins(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.Where("team_id = ? AND is_admin = ?", teamID, true).Order("created_at asc").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepository) UpdateMember(member *TeamMember) error {
	return r.db.Save(member).Error
}

func (r *teamRepository) RemoveMember(teamID, profileID uint) error {
	return r.db.Unscoped().
		Where("team_id = ? AND profile_id = ?", teamID, profileID).
		Delete(&TeamMember{}).Error
}

func (r *teamRepository) CountMembers(teamID uint) (int64, error) {
	var count int64
	err := r.db.Model(&TeamMember{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

func (r *teamRepository) CountAdmins(teamID uint) (int64, error) {
	var count int64
	err := r.db.Model(&TeamMember{}).Where("team_id = ? AND is_admin = ?", teamID, true).Count(&count).Error
	return count, err
}

func (r *teamRepository) IsMember(teamID, profileID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamMember{}).Where("team_id = ? AND profile_id = ?", teamID, profileID).Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) IsAdmin(teamID, profileID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamMember{}).
		Where("team_id = ? AND profile_id = ? AND is_admin = ?", teamID, profileID, true).
		Count(&count).Error
	return count > 0, err
}

// --- Invitation operations ---

func (r *teamRepository) CreateInvitation(inv *TeamInvitation) error {
	return r.db.Create(inv).Error
}

func (r *teamRepository) GetInvitationByID(id uint) (*TeamInvitation, error) {
	var inv TeamInvitation
	if err := r.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *teamRepository) GetInvitationByIDForUpdate(id uint) (*TeamInvitation, error) {
	var inv TeamInvitation
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// GetPendingInvitation looks for a pending invitation from one profile to
// another, regardless of team.
func (r *teamRepository) GetPendingInvitation(fromID, toID uint) (*TeamInvitation, error) {
	var inv TeamInvitation
	err := r.db.Where("from_profile_id = ? AND to_profile_id = ?", fromID, toID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *teamRepository) ListInvitations(profileID uint, direction request.Direction) ([]TeamInvitation, error) {
	column := "from_profile_id"
	if direction == request.DirectionReceived {
		column = "to_profile_id"
	}
	var invitations []TeamInvitation
	err := r.db.Where(column+" = ?", profileID).Order("created_at asc").Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *teamRepository) DeleteInvitation(id uint) error {
	return r.db.Unscoped().Delete(&TeamInvitation{}, id).Error
}

func (r *teamRepository) DeleteInvitationsForTeam(teamID uint) error {
	return r.db.Unscoped().Where("team_id = ?", teamID).Delete(&TeamInvitation{}).Error
}

func (r *teamRepository) ProfileExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&profile.Profile{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) AreFriends(a, b uint) (bool, error) {
	low, high := profile.CanonicalPair(a, b)
	var count int64
	err := r.db.Model(&profile.Friendship{}).
		Where("profile_low_id = ? AND profile_high_id = ?", low, high).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
