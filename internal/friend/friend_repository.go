package friend

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sidelines-app/sidelines/internal/profile"
	"github.com/sidelines-app/sidelines/internal/request"
)

// FriendRepository defines the data operations behind friend requests and the
// friendship edges they resolve into.
type FriendRepository interface {
	CreateRequest(fr *FriendRequest) error
	GetRequestByID(id uint) (*FriendRequest, error)
	// GetRequestByIDForUpdate locks the row until the surrounding transaction
	// ends so two concurrent accepts cannot both see it.
	GetRequestByIDForUpdate(id uint) (*FriendRequest, error)
	GetPendingRequest(fromID, toID uint) (*FriendRequest, error)
	ListRequests(profileID uint, direction request.Direction) ([]FriendRequest, error)
	DeleteRequest(id uint) error

	ProfileExists(id uint) (bool, error)
	AreFriends(a, b uint) (bool, error)
	AddFriendship(a, b uint) error
	RemoveFriendship(a, b uint) error
	ListFriends(profileID uint) ([]profile.Profile, error)

	WithTransaction(txFunc func(FriendRepository) error) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new instance of FriendRepository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(fr *FriendRequest) error {
	return r.db.Create(fr).Error
}

func (r *friendRepository) GetRequestByID(id uint) (*FriendRequest, error) {
	var fr FriendRequest
	if err := r.db.First(&fr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fr, nil
}

func (r *friendRepository) GetRequestByIDForUpdate(id uint) (*FriendRequest, error) {
	var fr FriendRequest
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&fr, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fr, nil
}

func (r *friendRepository) GetPendingRequest(fromID, toID uint) (*FriendRequest, error) {
	var fr FriendRequest
	err := r.db.Where("from_profile_id = ? AND to_profile_id = ?", fromID, toID).First(&fr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fr, nil
}

func (r *friendRepository) ListRequests(profileID uint, direction request.Direction) ([]FriendRequest, error) {
	column := "from_profile_id"
	if direction == request.DirectionReceived {
		column = "to_profile_id"
	}
	var requests []FriendRequest
	err := r.db.Where(column+" = ?", profileID).Order("created_at asc").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *friendRepository) DeleteRequest(id uint) error {
	return r.db.Unscoped().Delete(&FriendRequest{}, id).Error
}

func (r *friendRepository) ProfileExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&profile.Profile{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) AreFriends(a, b uint) (bool, error) {
	low, high := profile.CanonicalPair(a, b)
	var count int64
	err := r.db.Model(&profile.Friendship{}).
		Where("profile_low_id = ? AND profile_high_id = ?", low, high).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) AddFriendship(a, b uint) error {
	low, high := profile.CanonicalPair(a, b)
	return r.db.Create(&profile.Friendship{ProfileLowID: low, ProfileHighID: high}).Error
}

func (r *friendRepository) RemoveFriendship(a, b uint) error {
	low, high := profile.CanonicalPair(a, b)
	return r.db.Unscoped().
		Where("profile_low_id = ? AND profile_high_id = ?", low, high).
		Delete(&profile.Friendship{}).Error
}

func (r *friendRepository) ListFriends(profileID uint) ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := r.db.
		Joins("JOIN friendships ON (friendships.profile_low_id = profiles.id AND friendships.profile_high_id = ?) OR (friendships.profile_high_id = profiles.id AND friendships.profile_low_id = ?)",
			profileID, profileID).
		Where("friendships.deleted_at IS NULL").
		Order("profiles.id asc").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *friendRepository) WithTransaction(txFunc func(FriendRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&friendRepository{db: tx})
	})
}
