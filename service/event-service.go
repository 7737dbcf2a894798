package service

import (
	"github.com/venchfc/litmusEU/repository"

	"gorm.io/gorm"
)

type EventService struct {
	eventRepository *repository.EventRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		eventRepository: repository.NewEventRepository(db),
	}
}

func (s *EventService) GetActiveEvent() (*repository.Event, error) {
	return s.eventRepository.GetActiveEvent()
}

func (s *EventService) GetEventById(eventId int) (*repository.Event, error) {
	return s.eventRepository.GetEventById(eventId)
}

func (s *EventService) GetAllEvents() ([]*repository.Event, error) {
	return s.eventRepository.GetAllEvents()
}

// CloseActiveEvent archives the current event and starts the next one.
func (s *EventService) CloseActiveEvent() (*repository.Event, error) {
	return s.eventRepository.CloseActiveEvent()
}
