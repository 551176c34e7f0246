package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"catalogo/internal/apierror"
	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/stretchr/testify/require"
)

// ── Test fixtures ────────────────────────────────────────────────────────────

func newTestStore(t *testing.T) *repository.FileStore {
	t.Helper()
	s, err := repository.NewFileStore(filepath.Join(t.TempDir(), "catalogo.json"))
	require.NoError(t, err)
	return s
}

func productoRaw(nombre, categoria string) map[string]any {
	return map[string]any{
		"nombre":      nombre,
		"precio":      1.5,
		"descripcion": "Bebida carbonatada sabor cola",
		"categoria":   categoria,
	}
}

func requireKind(t *testing.T, err error, k apierror.Kind) *apierror.Error {
	t.Helper()
	require.Error(t, err)
	var e *apierror.Error
	require.True(t, errors.As(err, &e), "expected *apierror.Error, got %T: %v", err, err)
	require.Equal(t, k, e.Kind, "unexpected kind, message %q", e.Message)
	return e
}

// ── Fault injection ──────────────────────────────────────────────────────────

var errDisco = errors.New("disk I/O error")

// faultyStore wraps a real Store and fails selected product operations, both
// outside and inside transactions.
type faultyStore struct {
	repository.Store
	failCreate   bool
	failFindByID bool
	failList     bool
	updateErr    error
}

func (f *faultyStore) Productos() repository.ProductoRepository {
	return faultyProductos{ProductoRepository: f.Store.Productos(), f: f}
}

func (f *faultyStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return f.Store.WithTx(ctx, func(tx repository.Store) error {
		return fn(&faultyStore{
			Store:        tx,
			failCreate:   f.failCreate,
			failFindByID: f.failFindByID,
			failList:     f.failList,
			updateErr:    f.updateErr,
		})
	})
}

type faultyProductos struct {
	repository.ProductoRepository
	f *faultyStore
}

func (r faultyProductos) Create(ctx context.Context, p *model.Producto) error {
	if r.f.failCreate {
		return errDisco
	}
	return r.ProductoRepository.Create(ctx, p)
}

func (r faultyProductos) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	if r.f.failFindByID {
		return nil, errDisco
	}
	return r.ProductoRepository.FindByID(ctx, id)
}

func (r faultyProductos) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	if r.f.failList {
		return nil, errDisco
	}
	return r.ProductoRepository.List(ctx, filter)
}

func (r faultyProductos) Update(ctx context.Context, p *model.Producto) error {
	if r.f.updateErr != nil {
		return r.f.updateErr
	}
	return r.ProductoRepository.Update(ctx, p)
}
