package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"taskflow-be/internal/entities"
)

// NewTaskRepository creates the ownership-scoped repository for tasks
func NewTaskRepository(db *sql.DB, timeout time.Duration) *OwnedRepository[entities.Task] {
	return NewOwnedRepository(db, Schema[entities.Task]{
		Table:         "tasks",
		Columns:       []string{"id", "user_id", "title", "description", "status", "priority", "created_at", "updated_at"},
		SearchColumns: []string{"title", "description"},
		Scan: func(row RowScanner) (*entities.Task, error) {
			var t entities.Task
			err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
			if err != nil {
				return nil, err
			}
			return &t, nil
		},
	}, timeout)
}

// NewNoteRepository creates the ownership-scoped repository for notes
func NewNoteRepository(db *sql.DB, timeout time.Duration) *OwnedRepository[entities.Note] {
	return NewOwnedRepository(db, Schema[entities.Note]{
		Table:         "notes",
		Columns:       []string{"id", "user_id", "title", "content", "category", "is_favorite", "created_at", "updated_at"},
		SearchColumns: []string{"title", "content"},
		Scan: func(row RowScanner) (*entities.Note, error) {
			var n entities.Note
			err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category, &n.IsFavorite, &n.CreatedAt, &n.UpdatedAt)
			if err != nil {
				return nil, err
			}
			return &n, nil
		},
	}, timeout)
}

// NewPostRepository creates the ownership-scoped repository for posts
func NewPostRepository(db *sql.DB, timeout time.Duration) *OwnedRepository[entities.Post] {
	return NewOwnedRepository(db, Schema[entities.Post]{
		Table:         "posts",
		Columns:       []string{"id", "user_id", "title", "content", "status", "tags", "view_count", "created_at", "updated_at"},
		SearchColumns: []string{"title", "content"},
		Scan: func(row RowScanner) (*entities.Post, error) {
			var p entities.Post
			err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Status, pq.Array(&p.Tags), &p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
			if err != nil {
				return nil, err
			}
			if p.Tags == nil {
				p.Tags = []string{}
			}
			return &p, nil
		},
	}, timeout)
}
