package services

import (
	"testing"
	"time"

	"hearth/internal/pagination"
	"hearth/internal/testutil"
)

func TestCreateEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
		event, err := svc.CreateEvent(user.ID, CreateEventInput{
			Title:     "Dentist",
			Location:  "Main St Clinic",
			StartDate: start,
			EndDate:   start.Add(time.Hour),
		})
		testutil.AssertNoError(t, err)

		if event.ID == "" {
			t.Fatal("expected non-empty event ID")
		}
		if event.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, event.UserID)
		}
		if len(event.Participants) != 0 {
			t.Errorf("expected no participants, got %v", event.Participants)
		}
	})

	t.Run("end_before_start_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
		_, err := svc.CreateEvent(user.ID, CreateEventInput{
			Title:     "Backwards",
			StartDate: start,
			EndDate:   start.Add(-time.Minute),
		})
		testutil.AssertAppError(t, err, "INVALID_DATE_RANGE")
	})

	t.Run("all_day_normalized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
		event, err := svc.CreateEvent(user.ID, CreateEventInput{
			Title:     "Birthday",
			StartDate: start,
			EndDate:   start.Add(2 * time.Hour),
			IsAllDay:  true,
		})
		testutil.AssertNoError(t, err)

		wantStart := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2025, 6, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC)
		if !event.StartDate.Equal(wantStart) {
			t.Errorf("expected start %v, got %v", wantStart, event.StartDate)
		}
		if !event.EndDate.Equal(wantEnd) {
			t.Errorf("expected end %v, got %v", wantEnd, event.EndDate)
		}
	})
}

func TestGetUserEvents(t *testing.T) {
	t.Run("sorted_by_start_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)

		later := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
		earlier := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
		testutil.CreateTestEvent(t, db, user.ID, later)
		testutil.CreateTestEvent(t, db, user.ID, earlier)

		page, err := svc.GetUserEvents(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 2 {
			t.Fatalf("expected 2 events, got %d", page.TotalItems)
		}
		if !page.Data[0].StartDate.Before(page.Data[1].StartDate) {
			t.Errorf("expected ascending start order, got %v then %v",
				page.Data[0].StartDate, page.Data[1].StartDate)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestEvent(t, db, other.ID, time.Now())

		page, err := svc.GetUserEvents(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 0 {
			t.Errorf("expected no events for user, got %d", page.TotalItems)
		}
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)
		event := testutil.CreateTestEvent(t, db, user.ID, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))

		location := "Park"
		updated, err := svc.UpdateEvent(user.ID, event.ID, UpdateEventInput{
			Title:    "Picnic",
			Location: &location,
		})
		testutil.AssertNoError(t, err)

		if updated.Title != "Picnic" {
			t.Errorf("expected title Picnic, got %s", updated.Title)
		}
		if updated.Location != "Park" {
			t.Errorf("expected location Park, got %s", updated.Location)
		}
		if !updated.StartDate.Equal(event.StartDate) {
			t.Errorf("expected start date untouched, got %v", updated.StartDate)
		}
	})

	t.Run("range_revalidated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)
		event := testutil.CreateTestEvent(t, db, user.ID, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))

		badEnd := event.StartDate.Add(-time.Hour)
		_, err := svc.UpdateEvent(user.ID, event.ID, UpdateEventInput{EndDate: &badEnd})
		testutil.AssertAppError(t, err, "INVALID_DATE_RANGE")
	})

	t.Run("other_users_event_invisible", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		event := testutil.CreateTestEvent(t, db, other.ID, time.Now())

		_, err := svc.UpdateEvent(user.ID, event.ID, UpdateEventInput{Title: "X"})
		testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("owner_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)
		event := testutil.CreateTestEvent(t, db, user.ID, time.Now())

		testutil.AssertNoError(t, svc.DeleteEvent(user.ID, event.ID))

		_, err := svc.GetEventByID(user.ID, event.ID)
		testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteEvent(user.ID, "missing")
		testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
	})
}
