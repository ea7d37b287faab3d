package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

// taskService handles task-related business logic.
type taskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB) TaskServicer {
	return &taskService{db: db}
}

// CreateTask creates a new task assigned by the given user. When no
// assignees are supplied the creator is assigned to their own task.
func (s *taskService) CreateTask(userID string, input CreateTaskInput) (*models.Task, error) {
	assignedTo := input.AssignedTo
	if len(assignedTo) == 0 {
		assignedTo = []string{userID}
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		DueDate:     input.DueDate,
		AssignedTo:  assignedTo,
		AssignedBy:  userID,
		FamilyID:    input.FamilyID,
		Priority:    priority,
		Points:      input.Points,
		Budget:      input.Budget,
	}

	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return task, nil
}

// GetUserTasks returns a paginated list of tasks visible to the user:
// tasks of their family when familyID is given, otherwise tasks they
// created or are assigned to. Newest first.
func (s *taskService) GetUserTasks(userID string, familyID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error) {
	page.Defaults()

	base := s.db.Model(&models.Task{})
	if familyID != nil {
		base = base.Where("family_id = ?", *familyID)
	} else {
		// assigned_to is a JSON array of user ids; matching the quoted id
		// is enough since ids are UUIDs.
		base = base.Where("assigned_by = ? OR assigned_to LIKE ?", userID, `%"`+userID+`"%`)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tasks []models.Task
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(tasks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTaskByID returns a task by ID.
func (s *taskService) GetTaskByID(userID, taskID string) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}

// UpdateTask applies the set fields of input to an existing task. Only
// the creator or an assignee may update a task.
func (s *taskService) UpdateTask(userID, taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if !canTouchTask(task, userID) {
		return nil, apperrors.ErrForbidden
	}

	updates := make(map[string]interface{})
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Completed != nil {
		updates["completed"] = *input.Completed
	}
	if input.DueDate != nil {
		updates["due_date"] = input.DueDate
	}
	if input.AssignedTo != nil {
		task.AssignedTo = input.AssignedTo
		updates["assigned_to"] = task.AssignedTo
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}
	if input.Points != nil {
		updates["points"] = *input.Points
	}
	if input.Budget != nil {
		updates["budget"] = *input.Budget
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return task, nil
}

// DeleteTask removes a task. Only the creator may delete it.
func (s *taskService) DeleteTask(userID, taskID string) error {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}

	if task.AssignedBy != userID {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(task).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func canTouchTask(task *models.Task, userID string) bool {
	if task.AssignedBy == userID {
		return true
	}
	for _, id := range task.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}
