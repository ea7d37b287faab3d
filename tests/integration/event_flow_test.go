package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestEventFlow_CreateListUpdateDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Alice", "events@test.com", "password123")

	// Step 1: Create two events out of order
	rec := app.request("POST", "/api/events",
		`{"title":"Dentist","start_date":"2025-06-20T09:00:00Z","end_date":"2025-06-20T10:00:00Z"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/events",
		`{"title":"School play","start_date":"2025-06-12T18:00:00Z","end_date":"2025-06-12T20:00:00Z"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	eventID := parseJSON(t, rec)["event"].(map[string]interface{})["id"].(string)

	// Step 2: List comes back ordered by start date
	rec = app.request("GET", "/api/events", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 events, got %d", len(data))
	}
	if data[0].(map[string]interface{})["title"] != "School play" {
		t.Errorf("expected School play first, got %v", data[0].(map[string]interface{})["title"])
	}

	// Step 3: Move the event; the new range is validated
	rec = app.request("PUT", "/api/events/"+eventID,
		`{"start_date":"2025-06-13T18:00:00Z","end_date":"2025-06-13T17:00:00Z"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for backwards range, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INVALID_DATE_RANGE" {
		t.Errorf("expected INVALID_DATE_RANGE, got %v", code)
	}

	rec = app.request("PUT", "/api/events/"+eventID,
		`{"start_date":"2025-06-13T18:00:00Z","end_date":"2025-06-13T20:00:00Z"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 4: Delete
	rec = app.request("DELETE", "/api/events/"+eventID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/events/"+eventID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestEventFlow_AllDayNormalization(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Alice", "allday@test.com", "password123")

	// Mid-afternoon timestamps arrive from the client; the stored event
	// spans the whole day.
	rec := app.request("POST", "/api/events",
		`{"title":"Birthday","start_date":"2024-03-15T14:30:00Z","end_date":"2024-03-15T14:30:00Z","is_all_day":true}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	event := parseJSON(t, rec)["event"].(map[string]interface{})

	start := event["start_date"].(string)
	if !strings.HasPrefix(start, "2024-03-15T00:00:00") {
		t.Errorf("expected start at midnight, got %s", start)
	}
	end := event["end_date"].(string)
	if !strings.HasPrefix(end, "2024-03-15T23:59:59.999") {
		t.Errorf("expected end at 23:59:59.999, got %s", end)
	}
}

func TestEventFlow_ScopedToOwner(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "Alice", "alice-ev@test.com", "password123")
	bobToken, _ := app.registerUser(t, "Bob", "bob-ev@test.com", "password123")

	rec := app.request("POST", "/api/events",
		`{"title":"Private","start_date":"2025-06-10T18:00:00Z","end_date":"2025-06-10T19:00:00Z"}`, aliceToken)
	eventID := parseJSON(t, rec)["event"].(map[string]interface{})["id"].(string)

	// Bob cannot see, update, or delete Alice's event.
	for _, attempt := range []struct {
		method, body string
	}{
		{"GET", ""},
		{"PUT", `{"title":"Hijacked"}`},
		{"DELETE", ""},
	} {
		rec = app.request(attempt.method, "/api/events/"+eventID, attempt.body, bobToken)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404 for another user's event, got %d: %s",
				attempt.method, rec.Code, rec.Body.String())
		}
	}

	rec = app.request("GET", "/api/events", "", bobToken)
	if got := len(parseJSON(t, rec)["data"].([]interface{})); got != 0 {
		t.Errorf("expected empty list for Bob, got %d events", got)
	}
}
