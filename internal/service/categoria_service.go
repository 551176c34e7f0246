package service

import (
	"context"
	"errors"

	"catalogo/internal/apierror"
	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/validation"
)

// CategoriaService defines business operations for product categories.
type CategoriaService interface {
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.CategoriaResponse, error)
	// ObtenerPorNombre returns nil without error when no category matches.
	ObtenerPorNombre(ctx context.Context, nombre string) (*dto.CategoriaResponse, error)
	ExisteNombre(ctx context.Context, nombre string) (bool, error)
	Crear(ctx context.Context, raw map[string]any) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uint, raw map[string]any) (*dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type categoriaService struct {
	store repository.Store
}

func NewCategoriaService(store repository.Store) CategoriaService {
	return &categoriaService{store: store}
}

// mapCategoria converts a model to a DTO response.
func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre}
}

// buscarCategoria is the case-insensitive lookup shared with ProductoService.
// An absent category is reported as (nil, nil).
func buscarCategoria(ctx context.Context, repo repository.CategoriaRepository, nombre string) (*model.Categoria, error) {
	c, err := repo.ObtenerPorNombre(ctx, nombre)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.store.Categorias().Listar(ctx)
	if err != nil {
		return nil, dominio("listar categorías", err)
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uint) (*dto.CategoriaResponse, error) {
	c, err := s.store.Categorias().ObtenerPorID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, categoriaNoEncontrada(id)
	}
	if err != nil {
		return nil, dominio("obtener categoría", err)
	}
	resp := mapCategoria(*c)
	return &resp, nil
}

func (s *categoriaService) ObtenerPorNombre(ctx context.Context, nombre string) (*dto.CategoriaResponse, error) {
	c, err := buscarCategoria(ctx, s.store.Categorias(), nombre)
	if err != nil {
		return nil, dominio("buscar categoría", err)
	}
	if c == nil {
		return nil, nil
	}
	resp := mapCategoria(*c)
	return &resp, nil
}

func (s *categoriaService) ExisteNombre(ctx context.Context, nombre string) (bool, error) {
	c, err := s.ObtenerPorNombre(ctx, nombre)
	return c != nil, err
}

func (s *categoriaService) Crear(ctx context.Context, raw map[string]any) (*dto.CategoriaResponse, error) {
	in, issues := validation.Categoria(raw, validation.Full)
	if len(issues) > 0 {
		return nil, apierror.Validation(msgValidacion, issues)
	}
	nombre := *in.Nombre

	// Check for duplicate name
	existing, err := buscarCategoria(ctx, s.store.Categorias(), nombre)
	if err != nil {
		return nil, dominio("crear categoría", err)
	}
	if existing != nil {
		return nil, categoriaDuplicada(nombre)
	}

	c := &model.Categoria{Nombre: nombre}
	if err := s.store.Categorias().Crear(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, categoriaDuplicada(nombre)
		}
		return nil, dominio("crear categoría", err)
	}
	resp := mapCategoria(*c)
	return &resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uint, raw map[string]any) (*dto.CategoriaResponse, error) {
	in, issues := validation.Categoria(raw, validation.Partial)
	if len(issues) > 0 {
		return nil, apierror.Validation(msgValidacion, issues)
	}

	var c *model.Categoria
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		c, err = tx.Categorias().ObtenerPorID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return categoriaNoEncontrada(id)
		}
		if err != nil {
			return err
		}
		if in.Nombre == nil {
			return nil
		}

		// Check uniqueness if name is changing
		existing, err := buscarCategoria(ctx, tx.Categorias(), *in.Nombre)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return categoriaDuplicada(*in.Nombre)
		}
		c.Nombre = *in.Nombre

		err = tx.Categorias().Actualizar(ctx, c)
		if errors.Is(err, repository.ErrDuplicate) {
			return categoriaDuplicada(*in.Nombre)
		}
		return err
	})
	if err != nil {
		return nil, dominio("actualizar categoría", err)
	}
	resp := mapCategoria(*c)
	return &resp, nil
}

// Eliminar refuses to delete a category that still has products. The count
// and the delete run in one transaction; a foreign key violation raised by
// the store (concurrent insert) is reported the same way.
func (s *categoriaService) Eliminar(ctx context.Context, id uint) error {
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		n, err := tx.Categorias().ContarProductos(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return categoriaConProductos(id)
		}

		err = tx.Categorias().Eliminar(ctx, id)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return categoriaNoEncontrada(id)
		case errors.Is(err, repository.ErrForeignKey):
			return categoriaConProductos(id)
		}
		return err
	})
	return dominio("eliminar categoría", err)
}
