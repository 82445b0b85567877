package service

import (
	"context"

	"todo-tracker/internal/model"
	"todo-tracker/internal/repository"
)

// BoardStats is a point-in-time count of users and todos across all accounts.
type BoardStats struct {
	Users int64
	Todos map[model.Status]int64
}

// StatsService aggregates totals for the metrics gauges.
type StatsService struct {
	users *repository.UserRepository
	todos *repository.TodoRepository
}

func NewStatsService(users *repository.UserRepository, todos *repository.TodoRepository) *StatsService {
	return &StatsService{users: users, todos: todos}
}

// Snapshot always reports every status, with zero for empty columns.
func (s *StatsService) Snapshot(ctx context.Context) (BoardStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return BoardStats{}, err
	}
	counts, err := s.todos.CountByStatus(ctx)
	if err != nil {
		return BoardStats{}, err
	}
	todos := make(map[model.Status]int64, len(model.Statuses))
	for _, st := range model.Statuses {
		todos[model.Status(st)] = counts[model.Status(st)]
	}
	return BoardStats{Users: users, Todos: todos}, nil
}
