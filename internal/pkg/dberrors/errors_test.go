package dberrors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(fmt.Errorf("other")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", ConstraintName: "comments_parent_comment_id_fkey"})

	assert.True(t, IsForeignKeyViolation(err, "comments_parent_comment_id_fkey"))
	assert.False(t, IsForeignKeyViolation(err, "comments_resource_id_fkey"))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505", ConstraintName: "comments_parent_comment_id_fkey"}, "comments_parent_comment_id_fkey"))
}
