package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todo-tracker/internal/model"
)

// TodoRepository handles CRUD for todos. Reads preload the owning category.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// ListByUser returns the user's todos newest first.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *TodoRepository) ListByStatus(ctx context.Context, userID string, status model.Status) ([]model.Todo, error) {
	return r.list(ctx, "user_id = ? AND status = ?", userID, status)
}

func (r *TodoRepository) ListByCategory(ctx context.Context, userID, categoryID string) ([]model.Todo, error) {
	return r.list(ctx, "user_id = ? AND category_id = ?", userID, categoryID)
}

func (r *TodoRepository) list(ctx context.Context, query string, args ...any) ([]model.Todo, error) {
	todos := []model.Todo{}
	if err := r.db.WithContext(ctx).Preload("Category").Where(query, args...).
		Order("created_at DESC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, userID, id string) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).Preload("Category").Where("user_id = ? AND id = ?", userID, id).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update writes the given columns on a todo owned by userID; a nil value
// stores NULL. It reports whether a row matched.
func (r *TodoRepository) Update(ctx context.Context, userID, id string, columns map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(columns)
	if res.Error != nil {
		return false, fmt.Errorf("update todo: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountByCategory counts todos of any owner that reference the category.
func (r *TodoRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return count, nil
}

// Delete removes a todo for the given user. It reports whether a row was removed.
func (r *TodoRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&model.Todo{})
	if res.Error != nil {
		return false, fmt.Errorf("delete todo: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountByStatus counts todos of every owner grouped by status.
func (r *TodoRepository) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Todo{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count todos by status: %w", err)
	}
	counts := make(map[model.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
