package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

// eventService handles calendar-event business logic.
type eventService struct {
	db *gorm.DB
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB) EventServicer {
	return &eventService{db: db}
}

// CreateEvent creates a new event owned by the given user. All-day
// events are expanded to full calendar days before storage.
func (s *eventService) CreateEvent(userID string, input CreateEventInput) (*models.Event, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	participants := input.Participants
	if participants == nil {
		participants = []string{}
	}

	event := &models.Event{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Participants: participants,
		IsAllDay:     input.IsAllDay,
	}
	event.NormalizeAllDay()

	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return event, nil
}

// GetUserEvents returns the user's events ordered by start date.
func (s *eventService) GetUserEvents(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
	page.Defaults()

	base := s.db.Model(&models.Event{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.Event
	if err := base.Order("start_date ASC").Scopes(pagination.Paginate(page)).Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEventByID returns an event by ID if it belongs to the user.
func (s *eventService) GetEventByID(userID, eventID string) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// UpdateEvent applies the set fields of input to an existing event,
// re-validating the date range and re-normalizing all-day bounds.
func (s *eventService) UpdateEvent(userID, eventID string, input UpdateEventInput) (*models.Event, error) {
	event, err := s.GetEventByID(userID, eventID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		event.Title = input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = *input.EndDate
	}
	if input.Participants != nil {
		event.Participants = input.Participants
	}
	if input.IsAllDay != nil {
		event.IsAllDay = *input.IsAllDay
	}

	if event.EndDate.Before(event.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}
	event.NormalizeAllDay()

	if err := s.db.Save(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return event, nil
}

// DeleteEvent removes an event belonging to the user.
func (s *eventService) DeleteEvent(userID, eventID string) error {
	event, err := s.GetEventByID(userID, eventID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(event).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
