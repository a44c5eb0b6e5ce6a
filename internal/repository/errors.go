package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

// Postgres error codes enforced by the schema.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps store errors onto the domain error taxonomy: missing
// rows become NotFound, unique violations become Conflict, and foreign key
// violations become NotFound on the referenced record.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConflict(resource+" already exists", map[string]any{
				"constraint": pgErr.ConstraintName,
			})
		case pgForeignKeyViolation:
			// Deleting a still-referenced parent and inserting against a
			// missing parent both raise 23503; the detail text tells them apart.
			if strings.Contains(pgErr.Detail, "still referenced") {
				return apperrors.NewConflict(resource+" is still referenced", map[string]any{
					"constraint": pgErr.ConstraintName,
				})
			}
			return apperrors.NewNotFound("referenced record", map[string]any{
				"constraint": pgErr.ConstraintName,
			})
		}
	}
	return err
}

// ListFilter bounds plain list queries. A zero filter lists everything.
type ListFilter struct {
	Limit  int
	Offset int
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 200
	}
	return limit
}
