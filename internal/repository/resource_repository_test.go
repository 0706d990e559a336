package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow-be/internal/entities"
)

func testTaskRepo() *OwnedRepository[entities.Task] {
	return NewTaskRepository(nil, 10*time.Second)
}

func TestBuildListQuery(t *testing.T) {
	repo := testTaskRepo()

	t.Run("owner filter alone", func(t *testing.T) {
		query, args := repo.buildListQuery(7, Filter{})
		assert.Equal(t,
			"SELECT id, user_id, title, description, status, priority, created_at, updated_at "+
				"FROM tasks WHERE user_id = $1 ORDER BY created_at DESC",
			query)
		assert.Equal(t, []interface{}{int64(7)}, args)
	})

	t.Run("exact filters become conjunctions", func(t *testing.T) {
		query, args := repo.buildListQuery(7, Filter{
			Exact: Fields{
				{Column: "status", Value: "pending"},
				{Column: "priority", Value: "high"},
			},
		})
		assert.Contains(t, query, "WHERE user_id = $1 AND status = $2 AND priority = $3")
		assert.Equal(t, []interface{}{int64(7), "pending", "high"}, args)
	})

	t.Run("search spans the search columns with one placeholder", func(t *testing.T) {
		query, args := repo.buildListQuery(7, Filter{Search: "milk"})
		assert.Contains(t, query, "AND (title ILIKE $2 OR description ILIKE $2)")
		assert.Equal(t, []interface{}{int64(7), "%milk%"}, args)
	})

	t.Run("always orders newest first", func(t *testing.T) {
		query, _ := repo.buildListQuery(7, Filter{Search: "x"})
		assert.Contains(t, query, "ORDER BY created_at DESC")
	})
}

func TestBuildUpdateQuery(t *testing.T) {
	repo := testTaskRepo()

	query, args := repo.buildUpdateQuery(7, 42, Fields{
		{Column: "title", Value: "new title"},
		{Column: "status", Value: "completed"},
	})

	assert.Equal(t,
		"UPDATE tasks SET title = $1, status = $2, updated_at = NOW() "+
			"WHERE id = $3 AND user_id = $4 "+
			"RETURNING id, user_id, title, description, status, priority, created_at, updated_at",
		query)
	assert.Equal(t, []interface{}{"new title", "completed", int64(42), int64(7)}, args)
}

func TestBuildUpdateQueryScopesByOwner(t *testing.T) {
	// Every write must carry the joint (id, user_id) predicate; an id match
	// alone must never be enough.
	repo := testTaskRepo()
	query, _ := repo.buildUpdateQuery(1, 2, Fields{{Column: "title", Value: "t"}})
	assert.Contains(t, query, "AND user_id =")
}

func TestBuildIncrementQuery(t *testing.T) {
	repo := NewPostRepository(nil, 10*time.Second)

	query := repo.buildIncrementQuery("view_count")

	// Read-modify-write in one statement, scoped to the owner.
	assert.Equal(t,
		"UPDATE posts SET view_count = view_count + 1 "+
			"WHERE id = $1 AND user_id = $2 "+
			"RETURNING id, user_id, title, content, status, tags, view_count, created_at, updated_at",
		query)

	// Counting a view is not an edit: updated_at must not move.
	assert.NotContains(t, query, "updated_at = NOW()")
}

// recordingDriver captures every query the pool issues so tests can assert
// on statement counts and shapes. Each query finds no rows.
var recorded []string

type recordingDriver struct{}

func (recordingDriver) Open(name string) (driver.Conn, error) { return recordingConn{}, nil }

type recordingConn struct{}

func (recordingConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (recordingConn) Close() error                              { return nil }
func (recordingConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }

func (recordingConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	recorded = append(recorded, query)
	return emptyRows{}, nil
}

type emptyRows struct{}

func (emptyRows) Columns() []string              { return nil }
func (emptyRows) Close() error                   { return nil }
func (emptyRows) Next(dest []driver.Value) error { return io.EOF }

func init() {
	sql.Register("recorder", recordingDriver{})
}

func newRecorderDB(t *testing.T) *sql.DB {
	t.Helper()
	recorded = nil
	db, err := sql.Open("recorder", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetAndIncrementIsOneStatement(t *testing.T) {
	repo := NewPostRepository(newRecorderDB(t), 10*time.Second)

	_, err := repo.GetAndIncrement(context.Background(), 7, 42, "view_count")
	assert.ErrorIs(t, err, ErrNotFound)

	// One UPDATE ... RETURNING, never a SELECT followed by an UPDATE.
	require.Len(t, recorded, 1)
	assert.True(t, strings.HasPrefix(recorded[0], "UPDATE posts SET view_count = view_count + 1"), recorded[0])
	assert.Contains(t, recorded[0], "AND user_id =")
	assert.Contains(t, recorded[0], "RETURNING")
}

func TestUpdateWithoutChangesDoesNotWrite(t *testing.T) {
	repo := NewPostRepository(newRecorderDB(t), 10*time.Second)

	_, err := repo.Update(context.Background(), 7, 42, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// An empty change set reads the row back; nothing may be written.
	require.Len(t, recorded, 1)
	assert.True(t, strings.HasPrefix(recorded[0], "SELECT"), recorded[0])
	for _, q := range recorded {
		assert.NotContains(t, q, "UPDATE")
	}
}
