package profile

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// likeEscaper neutralizes LIKE wildcards so searches stay literal prefix matches.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProfileRepository defines the interface for profile data operations.
// Friendship edges are owned by the friend feature's repository.
type ProfileRepository interface {
	GetByID(id uint) (*Profile, error)
	Update(p *Profile) error
	SearchByUsername(query string, page, limit int) ([]Profile, int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(id uint) (*Profile, error) {
	var p Profile
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Update(p *Profile) error {
	return r.db.Save(p).Error
}

func (r *profileRepository) SearchByUsername(query string, page, limit int) ([]Profile, int64, error) {
	var profiles []Profile
	var total int64

	q := r.db.Model(&Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.username ILIKE ? AND users.deleted_at IS NULL", likeEscaper.Replace(query)+"%")

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := q.Offset(offset).Limit(limit).Order("users.username asc").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
