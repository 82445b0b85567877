package service

import (
	"context"
	"fmt"

	"todo-tracker/internal/apperr"
	"todo-tracker/internal/model"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/validation"
)

const categoryNotFound = "Category not found"

// CategoryWithTodos is a category together with its todos, newest first.
type CategoryWithTodos struct {
	model.Category
	Todos []model.Todo `json:"todos"`
}

// CategoryService provides ownership-scoped category operations.
type CategoryService struct {
	repo  *repository.CategoryRepository
	todos *repository.TodoRepository
}

func NewCategoryService(repo *repository.CategoryRepository, todos *repository.TodoRepository) *CategoryService {
	return &CategoryService{repo: repo, todos: todos}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get fails with NotFound both when the category is missing and when
// another user owns it.
func (s *CategoryService) Get(ctx context.Context, userID, id string) (*model.Category, error) {
	category, err := s.repo.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, categoryNotFound)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, userID string, body validation.Payload) (*model.Category, error) {
	name, err := body.RequiredString("name", "Name")
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, userID, name, ""); err != nil {
		return nil, err
	}

	category := model.Category{Name: name, UserID: userID}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, body validation.Payload) (*model.Category, error) {
	category, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	name, err := body.RequiredString("name", "Name")
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, userID, name, id); err != nil {
		return nil, err
	}
	if err := s.repo.Rename(ctx, category, name); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that todos still reference.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	count, err := s.todos.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation("Cannot delete category with associated todos")
	}
	removed, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound(categoryNotFound)
	}
	return nil
}

func (s *CategoryService) GetWithTodos(ctx context.Context, userID, id string) (*CategoryWithTodos, error) {
	category, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	todos, err := s.todos.ListByCategory(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("list category todos: %w", err)
	}
	for i := range todos {
		todos[i].Category = nil
	}
	return &CategoryWithTodos{Category: *category, Todos: todos}, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, userID, name, exceptID string) error {
	taken, err := s.repo.NameTaken(ctx, userID, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Validation("Category with this name already exists")
	}
	return nil
}
