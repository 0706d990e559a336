package models

import "taskflow-be/internal/repository"

// CreateTaskRequest represents the request body for creating a task. Status
// is not settable at creation; every task starts out pending.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,min=1"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// Fields maps the request onto insert columns, applying defaults
func (r *CreateTaskRequest) Fields() repository.Fields {
	priority := "medium"
	if r.Priority != nil {
		priority = *r.Priority
	}
	return repository.Fields{
		{Column: "title", Value: r.Title},
		{Column: "description", Value: r.Description},
		{Column: "priority", Value: priority},
	}
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// Changes maps the supplied fields onto update columns
func (r *UpdateTaskRequest) Changes() repository.Fields {
	var changes repository.Fields
	if r.Title != nil {
		changes = append(changes, repository.Field{Column: "title", Value: *r.Title})
	}
	if r.Description != nil {
		changes = append(changes, repository.Field{Column: "description", Value: *r.Description})
	}
	if r.Status != nil {
		changes = append(changes, repository.Field{Column: "status", Value: *r.Status})
	}
	if r.Priority != nil {
		changes = append(changes, repository.Field{Column: "priority", Value: *r.Priority})
	}
	return changes
}

// TaskListQuery holds the supported list filters for tasks
type TaskListQuery struct {
	StatusFilter   string `form:"status_filter" binding:"omitempty,oneof=pending in_progress completed"`
	PriorityFilter string `form:"priority_filter" binding:"omitempty,oneof=low medium high"`
	Search         string `form:"search"`
}

// Filter converts the query parameters into a repository filter
func (q *TaskListQuery) Filter() repository.Filter {
	var exact repository.Fields
	if q.StatusFilter != "" {
		exact = append(exact, repository.Field{Column: "status", Value: q.StatusFilter})
	}
	if q.PriorityFilter != "" {
		exact = append(exact, repository.Field{Column: "priority", Value: q.PriorityFilter})
	}
	return repository.Filter{Exact: exact, Search: q.Search}
}
