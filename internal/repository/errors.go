package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("registro no encontrado")

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("registro duplicado")

	// ErrForeignKey is returned when a write would break a foreign key.
	ErrForeignKey = errors.New("violación de clave foránea")
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps driver errors onto the package sentinels, keeping the original
// error in the chain for logging.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: %w", op, ErrForeignKey, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrForeignKey, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
