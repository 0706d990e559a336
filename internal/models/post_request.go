package models

import (
	"github.com/lib/pq"

	"taskflow-be/internal/repository"
)

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required,min=1"`
	Content string   `json:"content" binding:"required,min=1"`
	Status  *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
	Tags    []string `json:"tags"`
}

// Fields maps the request onto insert columns, applying defaults
func (r *CreatePostRequest) Fields() repository.Fields {
	status := "draft"
	if r.Status != nil {
		status = *r.Status
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return repository.Fields{
		{Column: "title", Value: r.Title},
		{Column: "content", Value: r.Content},
		{Column: "status", Value: status},
		{Column: "tags", Value: pq.Array(tags)},
	}
}

// UpdatePostRequest represents a partial post update
type UpdatePostRequest struct {
	Title   *string  `json:"title" binding:"omitempty,min=1"`
	Content *string  `json:"content" binding:"omitempty,min=1"`
	Status  *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
	Tags    []string `json:"tags"`
}

// Changes maps the supplied fields onto update columns
func (r *UpdatePostRequest) Changes() repository.Fields {
	var changes repository.Fields
	if r.Title != nil {
		changes = append(changes, repository.Field{Column: "title", Value: *r.Title})
	}
	if r.Content != nil {
		changes = append(changes, repository.Field{Column: "content", Value: *r.Content})
	}
	if r.Status != nil {
		changes = append(changes, repository.Field{Column: "status", Value: *r.Status})
	}
	if r.Tags != nil {
		changes = append(changes, repository.Field{Column: "tags", Value: pq.Array(r.Tags)})
	}
	return changes
}

// PostListQuery holds the supported list filters for posts
type PostListQuery struct {
	StatusFilter string `form:"status_filter" binding:"omitempty,oneof=draft published archived"`
	Search       string `form:"search"`
}

// Filter converts the query parameters into a repository filter
func (q *PostListQuery) Filter() repository.Filter {
	var exact repository.Fields
	if q.StatusFilter != "" {
		exact = append(exact, repository.Field{Column: "status", Value: q.StatusFilter})
	}
	return repository.Filter{Exact: exact, Search: q.Search}
}
