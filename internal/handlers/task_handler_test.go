package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
	"hearth/internal/services"
)

type mockTaskService struct {
	createTaskFn   func(userID string, input services.CreateTaskInput) (*models.Task, error)
	getUserTasksFn func(userID string, familyID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error)
	getTaskByIDFn  func(userID, taskID string) (*models.Task, error)
	updateTaskFn   func(userID, taskID string, input services.UpdateTaskInput) (*models.Task, error)
	deleteTaskFn   func(userID, taskID string) error
}

func (m *mockTaskService) CreateTask(userID string, input services.CreateTaskInput) (*models.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(userID, input)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) GetUserTasks(userID string, familyID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error) {
	if m.getUserTasksFn != nil {
		return m.getUserTasksFn(userID, familyID, page)
	}
	resp := pagination.NewPageResponse([]models.Task{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTaskService) GetTaskByID(userID, taskID string) (*models.Task, error) {
	if m.getTaskByIDFn != nil {
		return m.getTaskByIDFn(userID, taskID)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) UpdateTask(userID, taskID string, input services.UpdateTaskInput) (*models.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(userID, taskID, input)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) DeleteTask(userID, taskID string) error {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(userID, taskID)
	}
	return nil
}

func setupTaskRouter(handler *TaskHandler) *gin.Engine {
	r := gin.New()
	auth := injectUserID("user-1")
	r.POST("/tasks", auth, handler.CreateTask)
	r.GET("/tasks", auth, handler.GetTasks)
	r.GET("/tasks/:id", auth, handler.GetTask)
	r.PUT("/tasks/:id", auth, handler.UpdateTask)
	r.DELETE("/tasks/:id", auth, handler.DeleteTask)
	return r
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		taskSvc := &mockTaskService{
			createTaskFn: func(userID string, input services.CreateTaskInput) (*models.Task, error) {
				return &models.Task{
					Base:       models.Base{ID: "task-1"},
					Title:      input.Title,
					AssignedBy: userID,
				}, nil
			},
		}
		handler := NewTaskHandler(taskSvc)
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"title":"Dishes","priority":"high"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		task := result["task"].(map[string]interface{})
		if task["title"] != "Dishes" {
			t.Errorf("expected title Dishes, got %v", task["title"])
		}
	})

	t.Run("returns 400 on missing title", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"priority":"high"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown priority", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"title":"Dishes","priority":"urgent"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on negative budget", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"title":"Groceries","budget":"-10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_AMOUNT")
	})

	t.Run("passes budget through", func(t *testing.T) {
		var got *decimal.Decimal
		taskSvc := &mockTaskService{
			createTaskFn: func(_ string, input services.CreateTaskInput) (*models.Task, error) {
				got = input.Budget
				return &models.Task{}, nil
			},
		}
		handler := NewTaskHandler(taskSvc)
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"title":"Groceries","budget":"45.50"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if got == nil || !got.Equal(decimal.RequireFromString("45.50")) {
			t.Errorf("expected budget 45.50, got %v", got)
		}
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("returns 403 for non-participant", func(t *testing.T) {
		taskSvc := &mockTaskService{
			updateTaskFn: func(_, _ string, _ services.UpdateTaskInput) (*models.Task, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewTaskHandler(taskSvc)
		r := setupTaskRouter(handler)

		rec := doRequest(r, "PUT", "/tasks/task-1", `{"title":"Hijacked"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})

	t.Run("returns 404 for missing task", func(t *testing.T) {
		taskSvc := &mockTaskService{
			updateTaskFn: func(_, _ string, _ services.UpdateTaskInput) (*models.Task, error) {
				return nil, apperrors.ErrTaskNotFound
			},
		}
		handler := NewTaskHandler(taskSvc)
		r := setupTaskRouter(handler)

		rec := doRequest(r, "PUT", "/tasks/ghost", `{"title":"X"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("returns 200 with message", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "DELETE", "/tasks/task-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] == nil {
			t.Error("expected confirmation message")
		}
	})

	t.Run("returns 403 for assignee", func(t *testing.T) {
		taskSvc := &mockTaskService{
			deleteTaskFn: func(_, _ string) error { return apperrors.ErrForbidden },
		}
		handler := NewTaskHandler(taskSvc)
		r := setupTaskRouter(handler)

		rec := doRequest(r, "DELETE", "/tasks/task-1", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}
