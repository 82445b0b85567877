package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todo-tracker/internal/apperr"
	"todo-tracker/internal/model"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/validation"
)

const todoNotFound = "Todo not found"

// TodoService wraps todo-related business logic.
type TodoService struct {
	todoRepo     *repository.TodoRepository
	categoryRepo *repository.CategoryRepository
}

func NewTodoService(todoRepo *repository.TodoRepository, categoryRepo *repository.CategoryRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo, categoryRepo: categoryRepo}
}

// List returns the user's todos with their categories, newest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	return s.todoRepo.ListByUser(ctx, userID)
}

func (s *TodoService) Get(ctx context.Context, userID, id string) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, todoNotFound)
	}
	return todo, nil
}

// Create validates the body and stores a new todo. The category must belong
// to the same user; otherwise the request is invalid rather than not found.
func (s *TodoService) Create(ctx context.Context, userID string, body validation.Payload) (*model.Todo, error) {
	title, err := body.RequiredString("title", "Title")
	if err != nil {
		return nil, err
	}
	if _, err := body.RequiredString("categoryId", "Category ID"); err != nil {
		return nil, err
	}

	todo := model.Todo{
		Title:      title,
		Importance: model.ImportanceMedium,
		Status:     model.StatusReady,
		UserID:     userID,
	}

	description, _, err := body.OptionalString("description", "Description", true)
	if err != nil {
		return nil, err
	}
	todo.Description = description

	if v, ok, err := body.OptionalEnum("importance", "Importance", model.Importances); err != nil {
		return nil, err
	} else if ok {
		todo.Importance = model.Importance(v)
	}
	if v, ok, err := body.OptionalEnum("status", "Status", model.Statuses); err != nil {
		return nil, err
	} else if ok {
		todo.Status = model.Status(v)
	}
	if v, ok, err := body.OptionalBool("completed", "Completed"); err != nil {
		return nil, err
	} else if ok {
		todo.Completed = v
	}

	dueDate, _, err := body.OptionalDate("dueDate", "Due date")
	if err != nil {
		return nil, err
	}
	todo.DueDate = dueDate

	categoryID, err := body.UUIDString("categoryId", "Category ID")
	if err != nil {
		return nil, err
	}
	category, err := s.usableCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	todo.CategoryID = category.ID

	if err := s.todoRepo.Create(ctx, &todo); err != nil {
		return nil, err
	}
	todo.Category = category
	return &todo, nil
}

// Update applies only the fields present in body. An explicit null clears
// description or dueDate.
func (s *TodoService) Update(ctx context.Context, userID, id string, body validation.Payload) (*model.Todo, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	columns := map[string]any{}

	if v, ok, err := body.OptionalString("title", "Title", false); err != nil {
		return nil, err
	} else if ok {
		if validation.Blank(*v) {
			return nil, apperr.Validation("Title cannot be empty")
		}
		columns["title"] = *v
	}
	if v, ok, err := body.OptionalString("description", "Description", true); err != nil {
		return nil, err
	} else if ok {
		columns["description"] = v
	}
	if v, ok, err := body.OptionalEnum("importance", "Importance", model.Importances); err != nil {
		return nil, err
	} else if ok {
		columns["importance"] = v
	}
	if v, ok, err := body.OptionalEnum("status", "Status", model.Statuses); err != nil {
		return nil, err
	} else if ok {
		columns["status"] = v
	}
	if v, ok, err := body.OptionalBool("completed", "Completed"); err != nil {
		return nil, err
	} else if ok {
		columns["completed"] = v
	}
	if v, ok, err := body.OptionalDate("dueDate", "Due date"); err != nil {
		return nil, err
	} else if ok {
		columns["due_date"] = v
	}
	if body.Has("categoryId") {
		categoryID, err := body.UUIDString("categoryId", "Category ID")
		if err != nil {
			return nil, err
		}
		if _, err := s.usableCategory(ctx, userID, categoryID); err != nil {
			return nil, err
		}
		columns["category_id"] = categoryID
	}

	if len(columns) > 0 {
		ok, err := s.todoRepo.Update(ctx, userID, id, columns)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFound(todoNotFound)
		}
	}
	return s.Get(ctx, userID, id)
}

// UpdateStatus moves a todo to another column.
func (s *TodoService) UpdateStatus(ctx context.Context, userID, id string, body validation.Payload) (*model.Todo, error) {
	if !body.Has("status") {
		return nil, apperr.Validation("Status is required")
	}
	status, _, err := body.OptionalEnum("status", "Status", model.Statuses)
	if err != nil {
		return nil, err
	}

	ok, err := s.todoRepo.Update(ctx, userID, id, map[string]any{"status": status})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound(todoNotFound)
	}
	return s.Get(ctx, userID, id)
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	removed, err := s.todoRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound(todoNotFound)
	}
	return nil
}

func (s *TodoService) ListByStatus(ctx context.Context, userID, status string) ([]model.Todo, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.todoRepo.ListByStatus(ctx, userID, st)
}

// ParseStatus accepts only the three board columns.
func ParseStatus(status string) (model.Status, error) {
	if !validation.Enum(status, model.Statuses) {
		return "", apperr.Validation("Status must be one of: " + strings.Join(model.Statuses, ", "))
	}
	return model.Status(status), nil
}

// ListByCategory fails with NotFound when the category is not the caller's.
func (s *TodoService) ListByCategory(ctx context.Context, userID, categoryID string) ([]model.Todo, error) {
	if _, err := s.categoryRepo.FindOwned(ctx, userID, categoryID); err != nil {
		return nil, notFound(err, categoryNotFound)
	}
	return s.todoRepo.ListByCategory(ctx, userID, categoryID)
}

// usableCategory resolves a category the user may file todos under.
func (s *TodoService) usableCategory(ctx context.Context, userID, categoryID string) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Invalid category")
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category.UserID != userID {
		return nil, apperr.Validation("Invalid category")
	}
	return category, nil
}
