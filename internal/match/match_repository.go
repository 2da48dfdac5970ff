package match

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sidelines-app/sidelines/internal/request"
)

// MatchRepository defines persistence for match invitations, matches, votes
// and stat lines. Team membership checks consult the roster tables directly
// so invitation authorization can run inside the same transaction.
type MatchRepository interface {
	CreateInvitation(inv *MatchInvitation) error
	GetInvitationByID(id uint) (*MatchInvitation, error)
	GetInvitationByIDForUpdate(id uint) (*MatchInvitation, error)
	GetPendingInvitation(fromTeamID, toTeamID uint) (*MatchInvitation, error)
	ListInvitations(profileID uint, direction request.Direction) ([]MatchInvitation, error)
	DeleteInvitation(id uint) error

	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	ListMatches(page, limit int) ([]Match, int64, error)

	SaveVote(vote *MatchVote) error
	ListVotes(matchID uint) ([]MatchVote, error)

	SaveStats(stats *MatchStats) error
	ListStats(matchID uint) ([]MatchStats, error)

	TeamExists(teamID uint) (bool, error)
	IsTeamMember(teamID, profileID uint) (bool, error)
	IsTeamAdmin(teamID, profileID uint) (bool, error)

	WithTransaction(txFunc func(MatchRepository) error) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateInvitation(inv *MatchInvitation) error {
	return r.db.Create(inv).Error
}

func (r *matchRepository) GetInvitationByID(id uint) (*MatchInvitation, error) {
	var inv MatchInvitation
	err := r.db.First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// GetInvitationByIDForUpdate loads an invitation under a row lock so that
// concurrent resolutions serialize.
func (r *matchRepository) GetInvitationByIDForUpdate(id uint) (*MatchInvitation, error) {
	var inv MatchInvitation
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *matchRepository) GetPendingInvitation(fromTeamID, toTeamID uint) (*MatchInvitation, error) {
	var inv MatchInvitation
	err := r.db.Where("from_team_id = ? AND to_team_id = ?", fromTeamID, toTeamID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// ListInvitations returns pending invitations involving teams the profile
// administers, oldest first. Sent means the profile admins the challenging
// team, received the challenged one.
func (r *matchRepository) ListInvitations(profileID uint, direction request.Direction) ([]MatchInvitation, error) {
	teamColumn := "match_invitations.from_team_id"
	if direction == request.DirectionReceived {
		teamColumn = "match_invitations.to_team_id"
	}

	var invitations []MatchInvitation
	err := r.db.
		Joins("JOIN team_members ON team_members.team_id = "+teamColumn).
		Where("team_members.profile_id = ? AND team_members.is_admin = ? AND team_members.deleted_at IS NULL", profileID, true).
		Order("match_invitations.created_at asc").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *matchRepository) DeleteInvitation(id uint) error {
	return r.db.Unscoped().Delete(&MatchInvitation{}, id).Error
}

func (r *matchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

func (r *matchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	err := r.db.First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) ListMatches(page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	if err := r.db.Model(&Match{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Order("kickoff_at asc").Offset(offset).Limit(limit).Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

// SaveVote upserts on the (match, profile) pair so a re-vote overwrites the
// previous response instead of violating the unique index.
func (r *matchRepository) SaveVote(vote *MatchVote) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"response", "updated_at"}),
	}).Create(vote).Error
}

func (r *matchRepository) ListVotes(matchID uint) ([]MatchVote, error) {
	var votes []MatchVote
	err := r.db.Where("match_id = ?", matchID).
		Order("created_at asc").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *matchRepository) SaveStats(stats *MatchStats) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_id"}, {Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "shooting", "attacks", "possession", "fouls", "corners", "updated_at",
		}),
	}).Create(stats).Error
}

func (r *matchRepository) ListStats(matchID uint) ([]MatchStats, error) {
	var stats []MatchStats
	err := r.db.Where("match_id = ?", matchID).
		Order("team_id asc").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *matchRepository) TeamExists(teamID uint) (bool, error) {
	var count int64
	err := r.db.Table("teams").
		Where("id = ? AND deleted_at IS NULL", teamID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *matchRepository) IsTeamMember(teamID, profileID uint) (bool, error) {
	var count int64
	err := r.db.Table("team_members").
		Where("team_id = ? AND profile_id = ? AND deleted_at IS NULL", teamID, profileID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *matchRepository) IsTeamAdmin(teamID, profileID uint) (bool, error) {
	var count int64
	err := r.db.Table("team_members").
		Where("team_id = ? AND profile_id = ? AND is_admin = ? AND deleted_at IS NULL", teamID, profileID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *matchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&matchRepository{db: tx})
	})
}
