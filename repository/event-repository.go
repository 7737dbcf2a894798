package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
)

type Event struct {
	Id          int         `gorm:"primaryKey"`
	Name        string      `gorm:"not null"`
	Status      EventStatus `gorm:"type:litmus.event_status;not null;default:'active'"`
	CreatedAt   time.Time   `gorm:"not null"`
	CompletedAt *time.Time  `gorm:"null"`
}

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// GetActiveEvent returns the active event, creating one if none exists.
func (r *EventRepository) GetActiveEvent() (*Event, error) {
	var event Event
	result := r.DB.Where("status = ?", EventStatusActive).First(&event)
	if result.Error == nil {
		return &event, nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return nil, result.Error
	}
	event = Event{Name: "Main Event", Status: EventStatusActive}
	if err := r.DB.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetEventById(eventId int) (*Event, error) {
	var event Event
	result := r.DB.First(&event, eventId)
	if result.Error != nil {
		return nil, fmt.Errorf("event with id %d not found", eventId)
	}
	return &event, nil
}

func (r *EventRepository) GetAllEvents() ([]*Event, error) {
	var events []*Event
	result := r.DB.Order("created_at desc").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

// CloseActiveEvent archives the active event and starts a new one. Both
// writes happen in one transaction so there is never a gap without an
// active event.
func (r *EventRepository) CloseActiveEvent() (*Event, error) {
	var next *Event
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var current Event
		if err := tx.Where("status = ?", EventStatusActive).First(&current).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		current.Status = EventStatusCompleted
		current.CompletedAt = &now
		if err := tx.Save(&current).Error; err != nil {
			return err
		}
		next = &Event{
			Name:   fmt.Sprintf("Event %s", now.Format("2006-01-02 15:04")),
			Status: EventStatusActive,
		}
		return tx.Create(next).Error
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}
