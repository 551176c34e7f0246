package service

import (
	"context"
	"errors"
	"strconv"

	"catalogo/internal/apierror"
	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/validation"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	ListarDisponibles(ctx context.Context) ([]dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Crear(ctx context.Context, raw map[string]any) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uint, raw map[string]any) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type productoService struct {
	store repository.Store
}

func NewProductoService(store repository.Store) ProductoService {
	return &productoService{store: store}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Precio:       p.Precio,
		Descripcion:  p.Descripcion,
		Disponible:   p.Disponible,
		FechaIngreso: p.FechaIngreso,
		CategoriaID:  p.CategoriaID,
	}
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.store.Productos().List(ctx, filter)
	if err != nil {
		return nil, dominio("listar productos", err)
	}
	result := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		result = append(result, mapProducto(p))
	}
	return result, nil
}

func (s *productoService) ListarDisponibles(ctx context.Context) ([]dto.ProductoResponse, error) {
	disponible := true
	return s.Listar(ctx, dto.ProductoFilter{Disponible: &disponible})
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	p, err := s.store.Productos().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, productoNoEncontrado(id)
	}
	if err != nil {
		return nil, dominio("obtener producto", err)
	}
	resp := mapProducto(*p)
	return &resp, nil
}

// Crear validates, checks the name and category, then inserts and re-reads the
// row in one transaction so the response carries the stored id and fecha_ingreso.
func (s *productoService) Crear(ctx context.Context, raw map[string]any) (*dto.ProductoResponse, error) {
	in, issues := validation.Producto(raw, validation.Full)
	if len(issues) > 0 {
		return nil, apierror.Validation(msgValidacion, issues)
	}

	var creado *model.Producto
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := nombreProductoLibre(ctx, tx.Productos(), *in.Nombre, 0); err != nil {
			return err
		}
		cat, err := buscarCategoria(ctx, tx.Categorias(), *in.Categoria)
		if err != nil {
			return err
		}
		if cat == nil {
			return categoriaInexistente(*in.Categoria)
		}

		p := &model.Producto{
			Nombre:      *in.Nombre,
			Precio:      *in.Precio,
			Descripcion: *in.Descripcion,
			Disponible:  true,
			CategoriaID: cat.ID,
		}
		if in.Disponible != nil {
			p.Disponible = *in.Disponible
		}
		if err := tx.Productos().Create(ctx, p); err != nil {
			return errorEscritura(err, *in.Nombre, *in.Categoria)
		}

		creado, err = tx.Productos().FindByID(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, dominio("crear producto", err)
	}
	resp := mapProducto(*creado)
	return &resp, nil
}

// Actualizar applies a partial patch. Fields absent from raw keep their value;
// id and fecha_ingreso are never written.
func (s *productoService) Actualizar(ctx context.Context, id uint, raw map[string]any) (*dto.ProductoResponse, error) {
	in, issues := validation.Producto(raw, validation.Partial)
	if len(issues) > 0 {
		return nil, apierror.Validation(msgValidacion, issues)
	}

	var actualizado *model.Producto
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		p, err := tx.Productos().FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return productoNoEncontrado(id)
		}
		if err != nil {
			return err
		}

		if in.Nombre != nil {
			if err := nombreProductoLibre(ctx, tx.Productos(), *in.Nombre, id); err != nil {
				return err
			}
			p.Nombre = *in.Nombre
		}
		if in.Categoria != nil {
			cat, err := buscarCategoria(ctx, tx.Categorias(), *in.Categoria)
			if err != nil {
				return err
			}
			if cat == nil {
				return categoriaInexistente(*in.Categoria)
			}
			p.CategoriaID = cat.ID
		}
		if in.Precio != nil {
			p.Precio = *in.Precio
		}
		if in.Descripcion != nil {
			p.Descripcion = *in.Descripcion
		}
		if in.Disponible != nil {
			p.Disponible = *in.Disponible
		}

		if err := tx.Productos().Update(ctx, p); err != nil {
			categoria := strconv.FormatUint(uint64(p.CategoriaID), 10)
			if in.Categoria != nil {
				categoria = *in.Categoria
			}
			return errorEscritura(err, p.Nombre, categoria)
		}
		actualizado, err = tx.Productos().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, dominio("actualizar producto", err)
	}
	resp := mapProducto(*actualizado)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uint) error {
	err := s.store.Productos().Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return productoNoEncontrado(id)
	}
	return dominio("eliminar producto", err)
}

// nombreProductoLibre fails with DuplicateResource when another product
// (other than excepto) already uses nombre, ignoring case.
func nombreProductoLibre(ctx context.Context, repo repository.ProductoRepository, nombre string, excepto uint) error {
	existente, err := repo.FindByNombre(ctx, nombre)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existente.ID != excepto {
		return productoDuplicado(nombre)
	}
	return nil
}

// errorEscritura classifies a failed product write. The unique index and the
// category foreign key catch races the pre-checks cannot.
func errorEscritura(err error, nombre, categoria string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return productoDuplicado(nombre)
	case errors.Is(err, repository.ErrForeignKey):
		return categoriaInexistente(categoria)
	}
	return err
}
