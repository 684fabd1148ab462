package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// SQLSTATE codes the repositories translate.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// MapError translates a storage error for the row entity/id into the domain
// vocabulary. Context cancellation is wrapped but keeps its identity.
func MapError(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrap(entity, id, err)
	case errors.Is(err, pgx.ErrNoRows):
		return domain.NewNotFoundError(entity, id)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return wrap(entity, id, err)
	}

	switch pgErr.Code {
	case uniqueViolation:
		return wrap(entity, id, domain.ErrAlreadyExists)
	case foreignKeyViolation:
		return wrap(entity, id, domain.ErrNotFound)
	case checkViolation:
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		return wrap(entity, id, domain.NewValidationError(field, "violates check constraint"))
	default:
		return wrap(entity, id, err)
	}
}

func wrap(entity, id string, err error) error {
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
