package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
	"hearth/internal/services"
)

type mockEventService struct {
	createEventFn   func(userID string, input services.CreateEventInput) (*models.Event, error)
	getUserEventsFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error)
	getEventByIDFn  func(userID, eventID string) (*models.Event, error)
	updateEventFn   func(userID, eventID string, input services.UpdateEventInput) (*models.Event, error)
	deleteEventFn   func(userID, eventID string) error
}

func (m *mockEventService) CreateEvent(userID string, input services.CreateEventInput) (*models.Event, error) {
	if m.createEventFn != nil {
		return m.createEventFn(userID, input)
	}
	return &models.Event{}, nil
}

func (m *mockEventService) GetUserEvents(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
	if m.getUserEventsFn != nil {
		return m.getUserEventsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Event{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockEventService) GetEventByID(userID, eventID string) (*models.Event, error) {
	if m.getEventByIDFn != nil {
		return m.getEventByIDFn(userID, eventID)
	}
	return &models.Event{}, nil
}

func (m *mockEventService) UpdateEvent(userID, eventID string, input services.UpdateEventInput) (*models.Event, error) {
	if m.updateEventFn != nil {
		return m.updateEventFn(userID, eventID, input)
	}
	return &models.Event{}, nil
}

func (m *mockEventService) DeleteEvent(userID, eventID string) error {
	if m.deleteEventFn != nil {
		return m.deleteEventFn(userID, eventID)
	}
	return nil
}

func setupEventRouter(handler *EventHandler) *gin.Engine {
	r := gin.New()
	auth := injectUserID("user-1")
	r.POST("/events", auth, handler.CreateEvent)
	r.GET("/events", auth, handler.GetEvents)
	r.GET("/events/:id", auth, handler.GetEvent)
	r.PUT("/events/:id", auth, handler.UpdateEvent)
	r.DELETE("/events/:id", auth, handler.DeleteEvent)
	return r
}

func TestEventHandler_CreateEvent(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		eventSvc := &mockEventService{
			createEventFn: func(userID string, input services.CreateEventInput) (*models.Event, error) {
				return &models.Event{
					Base:      models.Base{ID: "event-1"},
					Title:     input.Title,
					UserID:    userID,
					StartDate: input.StartDate,
					EndDate:   input.EndDate,
					IsAllDay:  input.IsAllDay,
				}, nil
			},
		}
		r := setupEventRouter(NewEventHandler(eventSvc))

		rec := doRequest(r, http.MethodPost, "/events", `{
			"title": "Family dinner",
			"start_date": "2025-06-10T18:00:00Z",
			"end_date": "2025-06-10T20:00:00Z",
			"participants": ["user-2"]
		}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		event, ok := result["event"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected event object in response, got: %v", result)
		}
		if event["title"] != "Family dinner" {
			t.Errorf("expected title %q, got %q", "Family dinner", event["title"])
		}
	})

	t.Run("returns 400 when title is missing", func(t *testing.T) {
		r := setupEventRouter(NewEventHandler(&mockEventService{}))

		rec := doRequest(r, http.MethodPost, "/events", `{
			"start_date": "2025-06-10T18:00:00Z",
			"end_date": "2025-06-10T20:00:00Z"
		}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 when dates are missing", func(t *testing.T) {
		r := setupEventRouter(NewEventHandler(&mockEventService{}))

		rec := doRequest(r, http.MethodPost, "/events", `{"title": "No dates"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 when the range is invalid", func(t *testing.T) {
		eventSvc := &mockEventService{
			createEventFn: func(_ string, _ services.CreateEventInput) (*models.Event, error) {
				return nil, apperrors.ErrInvalidDateRange
			},
		}
		r := setupEventRouter(NewEventHandler(eventSvc))

		rec := doRequest(r, http.MethodPost, "/events", `{
			"title": "Backwards",
			"start_date": "2025-06-10T20:00:00Z",
			"end_date": "2025-06-10T18:00:00Z"
		}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE_RANGE")
	})
}

func TestEventHandler_GetEvents(t *testing.T) {
	t.Run("returns the user's page", func(t *testing.T) {
		start := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
		eventSvc := &mockEventService{
			getUserEventsFn: func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
				if userID != "user-1" {
					t.Errorf("expected userID user-1, got %q", userID)
				}
				resp := pagination.NewPageResponse([]models.Event{
					{Base: models.Base{ID: "event-1"}, Title: "Dinner", StartDate: start, EndDate: start.Add(2 * time.Hour)},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupEventRouter(NewEventHandler(eventSvc))

		rec := doRequest(r, http.MethodGet, "/events", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data, ok := result["data"].([]interface{})
		if !ok || len(data) != 1 {
			t.Fatalf("expected one event in data, got: %v", result)
		}
	})
}

func TestEventHandler_UpdateEvent(t *testing.T) {
	t.Run("passes only the set fields through", func(t *testing.T) {
		eventSvc := &mockEventService{
			updateEventFn: func(userID, eventID string, input services.UpdateEventInput) (*models.Event, error) {
				if eventID != "event-1" {
					t.Errorf("expected eventID event-1, got %q", eventID)
				}
				if input.Title != "Moved dinner" {
					t.Errorf("expected title %q, got %q", "Moved dinner", input.Title)
				}
				if input.StartDate != nil || input.EndDate != nil || input.IsAllDay != nil {
					t.Error("expected unset fields to stay nil")
				}
				return &models.Event{Base: models.Base{ID: eventID}, Title: input.Title}, nil
			},
		}
		r := setupEventRouter(NewEventHandler(eventSvc))

		rec := doRequest(r, http.MethodPut, "/events/event-1", `{"title": "Moved dinner"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 for another user's event", func(t *testing.T) {
		eventSvc := &mockEventService{
			updateEventFn: func(_, _ string, _ services.UpdateEventInput) (*models.Event, error) {
				return nil, apperrors.ErrEventNotFound
			},
		}
		r := setupEventRouter(NewEventHandler(eventSvc))

		rec := doRequest(r, http.MethodPut, "/events/event-9", `{"title": "Nope"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EVENT_NOT_FOUND")
	})
}

func TestEventHandler_DeleteEvent(t *testing.T) {
	t.Run("returns confirmation message", func(t *testing.T) {
		deleted := ""
		eventSvc := &mockEventService{
			deleteEventFn: func(_, eventID string) error {
				deleted = eventID
				return nil
			},
		}
		r := setupEventRouter(NewEventHandler(eventSvc))

		rec := doRequest(r, http.MethodDelete, "/events/event-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if deleted != "event-1" {
			t.Errorf("expected event-1 to be deleted, got %q", deleted)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Event deleted" {
			t.Errorf("unexpected message: %v", result["message"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		eventSvc := &mockEventService{
			deleteEventFn: func(_, _ string) error {
				return apperrors.ErrEventNotFound
			},
		}
		r := setupEventRouter(NewEventHandler(eventSvc))

		rec := doRequest(r, http.MethodDelete, "/events/event-9", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}
