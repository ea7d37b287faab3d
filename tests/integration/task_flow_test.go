package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTaskFlow_CreateListUpdateDelete(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "Alice", "alice@test.com", "password123")
	bobToken, bobID := app.registerUser(t, "Bob", "bob@test.com", "password123")

	// Step 1: Alice creates a task assigned to Bob
	rec := app.request("POST", "/api/tasks",
		fmt.Sprintf(`{"title":"Dishes","assigned_to":[%q],"points":5}`, bobID), aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	task := parseJSON(t, rec)["task"].(map[string]interface{})
	taskID := task["id"].(string)
	if task["priority"] != "medium" {
		t.Errorf("expected default priority medium, got %v", task["priority"])
	}

	// Step 2: Bob sees the task in his list
	rec = app.request("GET", "/api/tasks", "", bobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 task in Bob's list, got %d", len(data))
	}
	if data[0].(map[string]interface{})["title"] != "Dishes" {
		t.Errorf("expected Dishes, got %v", data[0].(map[string]interface{})["title"])
	}

	// Step 3: Bob, as assignee, marks it completed
	rec = app.request("PUT", "/api/tasks/"+taskID, `{"completed":true}`, bobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["task"].(map[string]interface{})
	if updated["completed"] != true {
		t.Errorf("expected completed true, got %v", updated["completed"])
	}

	// Step 4: Bob may not delete it, only the creator may
	rec = app.request("DELETE", "/api/tasks/"+taskID, "", bobToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for assignee delete, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", code)
	}

	// Step 5: Alice deletes it
	rec = app.request("DELETE", "/api/tasks/"+taskID, "", aliceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/tasks/"+taskID, "", aliceToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestTaskFlow_StrangerCannotUpdate(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "Alice", "alice2@test.com", "password123")
	eveToken, _ := app.registerUser(t, "Eve", "eve@test.com", "password123")

	rec := app.request("POST", "/api/tasks", `{"title":"Private chore"}`, aliceToken)
	taskID := parseJSON(t, rec)["task"].(map[string]interface{})["id"].(string)

	rec = app.request("PUT", "/api/tasks/"+taskID, `{"title":"Hijacked"}`, eveToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTaskFlow_BudgetTravelsWithTask(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Alice", "alice3@test.com", "password123")

	rec := app.request("POST", "/api/tasks",
		`{"title":"Groceries","budget":"45.50"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	task := parseJSON(t, rec)["task"].(map[string]interface{})
	if task["budget"] != "45.5" {
		t.Errorf("expected budget 45.5, got %v", task["budget"])
	}

	// Negative budget is rejected at the service layer
	rec = app.request("POST", "/api/tasks",
		`{"title":"Bad","budget":"-10"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INVALID_AMOUNT" {
		t.Errorf("expected INVALID_AMOUNT, got %v", code)
	}
}
