package announcement

import (
	"errors"

	"gorm.io/gorm"
)

// AnnouncementRepository defines the interface for announcement data operations
type AnnouncementRepository interface {
	Create(a *Announcement) error
	GetByID(id uint) (*Announcement, error)
	GetByTeam(teamID uint) ([]Announcement, error)
	Update(a *Announcement) error
	Delete(id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new instance of AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(a *Announcement) error {
	return r.db.Create(a).Error
}

func (r *announcementRepository) GetByID(id uint) (*Announcement, error) {
	var a Announcement
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// GetByTeam returns a team's board with pinned announcements first,
// newest first within each group.
func (r *announcementRepository) GetByTeam(teamID uint) ([]Announcement, error) {
	var list []Announcement
	if err := r.db.Where("team_id = ?", teamID).
		Order("pinned desc, created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *announcementRepository) Update(a *Announcement) error {
	return r.db.Save(a).Error
}

func (r *announcementRepository) Delete(id uint) error {
	return r.db.Delete(&Announcement{}, id).Error
}
