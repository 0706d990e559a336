package models

import "taskflow-be/internal/repository"

// CreateNoteRequest represents the request body for creating a note
type CreateNoteRequest struct {
	Title    string  `json:"title" binding:"required,min=1"`
	Content  *string `json:"content"`
	Category *string `json:"category" binding:"omitempty,max=50"`
}

// Fields maps the request onto insert columns, applying defaults
func (r *CreateNoteRequest) Fields() repository.Fields {
	category := "general"
	if r.Category != nil {
		category = *r.Category
	}
	return repository.Fields{
		{Column: "title", Value: r.Title},
		{Column: "content", Value: r.Content},
		{Column: "category", Value: category},
	}
}

// UpdateNoteRequest represents a partial note update
type UpdateNoteRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1"`
	Content    *string `json:"content"`
	Category   *string `json:"category" binding:"omitempty,max=50"`
	IsFavorite *bool   `json:"is_favorite"`
}

// Changes maps the supplied fields onto update columns
func (r *UpdateNoteRequest) Changes() repository.Fields {
	var changes repository.Fields
	if r.Title != nil {
		changes = append(changes, repository.Field{Column: "title", Value: *r.Title})
	}
	if r.Content != nil {
		changes = append(changes, repository.Field{Column: "content", Value: *r.Content})
	}
	if r.Category != nil {
		changes = append(changes, repository.Field{Column: "category", Value: *r.Category})
	}
	if r.IsFavorite != nil {
		changes = append(changes, repository.Field{Column: "is_favorite", Value: *r.IsFavorite})
	}
	return changes
}

// NoteListQuery holds the supported list filters for notes
type NoteListQuery struct {
	CategoryFilter string `form:"category_filter" binding:"omitempty,max=50"`
	IsFavorite     *bool  `form:"is_favorite"`
	Search         string `form:"search"`
}

// Filter converts the query parameters into a repository filter
func (q *NoteListQuery) Filter() repository.Filter {
	var exact repository.Fields
	if q.CategoryFilter != "" {
		exact = append(exact, repository.Field{Column: "category", Value: q.CategoryFilter})
	}
	if q.IsFavorite != nil {
		exact = append(exact, repository.Field{Column: "is_favorite", Value: *q.IsFavorite})
	}
	return repository.Filter{Exact: exact, Search: q.Search}
}
