package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/easyhomework/backend/internal/apperr"
	"github.com/easyhomework/backend/internal/models"
)

const taskColumns = `id, user_id, title, child_name, category, due_date, completed, completed_at, points, created_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.ChildName, &t.Category,
		&t.DueDate, &t.Completed, &t.CompletedAt, &t.Points, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks returns the user's tasks, newest first.
func (s *PostgresStore) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) CreateTask(ctx context.Context, userID string, nt models.NewTask) (*models.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, child_name, category, due_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+taskColumns,
		userID, nt.Title, nt.ChildName, nt.Category, nt.DueDate,
	))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// SetTaskCompleted marks the task completed at completedAt, or not completed
// when completedAt is nil. The flag and timestamp change in one statement.
func (s *PostgresStore) SetTaskCompleted(ctx context.Context, userID, id string, completedAt *time.Time) (*models.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx,
		`UPDATE tasks SET completed = $1, completed_at = $2
		 WHERE id = $3 AND user_id = $4
		 RETURNING `+taskColumns,
		completedAt != nil, completedAt, id, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) DeleteTask(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
