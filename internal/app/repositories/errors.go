package repositories

import (
	"fmt"

	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/dberrors"
)

// writeError maps foreign key violations on user-written rows to the sentinel the
// services branch on. Constraint names follow the default <table>_<column>_fkey
// naming of the migrations.
func writeError(err error, table, action string) error {
	switch {
	case dberrors.IsForeignKeyViolation(err, table+"_user_id_fkey"):
		// the token names a user the database does not know
		return apperrors.ErrUnauthorized
	case dberrors.IsForeignKeyViolation(err, table+"_resource_id_fkey"):
		return apperrors.ErrResourceNotFound
	case dberrors.IsForeignKeyViolation(err, table+"_parent_comment_id_fkey"),
		dberrors.IsForeignKeyViolation(err, table+"_comment_id_fkey"):
		return apperrors.ErrCommentNotFound
	}
	return fmt.Errorf("error %s: %w", action, err)
}
