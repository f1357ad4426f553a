package event

import (
	"errors"

	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/team"
)

// EventRepository defines the interface for event and attendance data operations
type EventRepository interface {
	CreateEvent(e *Event) error
	GetEventByID(id uint) (*Event, error)
	GetEventsByTeam(teamID uint) ([]Event, error)
	UpdateEvent(e *Event) error
	DeleteEvent(id uint) error

	GetAttendanceForEvent(eventID uint) ([]Attendance, error)
	GetAttendanceForMatch(matchID uint) ([]Attendance, error)
	UpsertAttendance(a *Attendance) error

	MatchExists(teamID, matchID uint) (bool, error)
	GetTeamMemberByUser(teamID, userID uint) (*team.TeamMember, error)
	GetTeamMemberByID(id uint) (*team.TeamMember, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) GetEventsByTeam(teamID uint) ([]Event, error) {
	var events []Event
	if err := r.db.Where("team_id = ?", teamID).Order("starts_at asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) UpdateEvent(e *Event) error {
	return r.db.Save(e).Error
}

func (r *eventRepository) DeleteEvent(id uint) error {
	if err := r.db.Where("event_id = ?", id).Delete(&Attendance{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&Event{}, id).Error
}

func (r *eventRepository) GetAttendanceForEvent(eventID uint) ([]Attendance, error) {
	var list []Attendance
	if err := r.db.Where("event_id = ?", eventID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *eventRepository) GetAttendanceForMatch(matchID uint) ([]Attendance, error) {
	var list []Attendance
	if err := r.db.Where("match_id = ?", matchID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpsertAttendance keeps one row per (event|match, member) pair.
func (r *eventRepository) UpsertAttendance(a *Attendance) error {
	var existing Attendance
	query := r.db.Where("team_member_id = ?", a.TeamMemberID)
	if a.EventID != nil {
		query = query.Where("event_id = ?", *a.EventID)
	} else {
		query = query.Where("match_id = ?", *a.MatchID)
	}

	err := query.First(&existing).Error
	if err == nil {
		existing.Status = a.Status
		existing.Note = a.Note
		if err := r.db.Save(&existing).Error; err != nil {
			return err
		}
		*a = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(a).Error
}

func (r *eventRepository) MatchExists(teamID, matchID uint) (bool, error) {
	var count int64
	err := r.db.Table("matches").
		Where("id = ? AND team_id = ? AND deleted_at IS NULL", matchID, teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepository) GetTeamMemberByUser(teamID, userID uint) (*team.TeamMember, error) {
	var m team.TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *eventRepository) GetTeamMemberByID(id uint) (*team.TeamMember, error) {
	var m team.TeamMember
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
