package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle. Services
// depend on this interface, not on the concrete GORM or file implementation.
type Store interface {
	Categorias() CategoriaRepository
	Productos() ProductoRepository

	// WithTx runs fn against a transactional view of the store. A non-nil
	// error from fn rolls back every write made through tx.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	Ping(ctx context.Context) error
}

type gormStore struct{ db *gorm.DB }

// NewStore returns a Store backed by a GORM connection (Postgres or SQLite).
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Categorias() CategoriaRepository { return NewCategoriaRepository(s.db) }

func (s *gormStore) Productos() ProductoRepository { return NewProductoRepository(s.db) }

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
