package models

import "time"

// Task is a homework item owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Title       string     `json:"title"`
	ChildName   string     `json:"child_name"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Points      int        `json:"points"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTask carries the caller-supplied fields of a task insert.
type NewTask struct {
	Title     string
	ChildName string
	Category  string
	DueDate   *time.Time
}

// CreateTaskRequest is the JSON body for POST /tasks.
type CreateTaskRequest struct {
	Title     string `json:"title"`
	ChildName string `json:"child_name"`
	Category  string `json:"category"`
	DueDate   string `json:"due_date"`
}

// UpdateTaskRequest is the JSON body for PATCH /tasks/{id}.
type UpdateTaskRequest struct {
	Completed *bool `json:"completed"`
}
