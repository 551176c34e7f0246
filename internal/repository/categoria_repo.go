package repository

import (
	"context"

	"catalogo/internal/model"

	"gorm.io/gorm"
)

// CategoriaRepository defines CRUD operations for Categoria.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	Listar(ctx context.Context) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.Categoria, error)
	// ObtenerPorNombre matches case-insensitively.
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	Actualizar(ctx context.Context, c *model.Categoria) error
	Eliminar(ctx context.Context, id uint) error
	ContarProductos(ctx context.Context, id uint) (int64, error)
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Crear(ctx context.Context, c *model.Categoria) error {
	return classify("crear categoria", r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoriaRepository) Listar(ctx context.Context) ([]model.Categoria, error) {
	list := []model.Categoria{}
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, classify("listar categorias", err)
}

func (r *categoriaRepository) ObtenerPorID(ctx context.Context, id uint) (*model.Categoria, error) {
	var c model.Categoria
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, classify("obtener categoria", err)
	}
	return &c, nil
}

func (r *categoriaRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	// SQLite lower() folds ASCII only; "LÁCTEOS" and "lácteos" do not match there.
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, classify("obtener categoria por nombre", err)
	}
	return &c, nil
}

func (r *categoriaRepository) Actualizar(ctx context.Context, c *model.Categoria) error {
	res := r.db.WithContext(ctx).Model(&model.Categoria{}).Where("id = ?", c.ID).
		Update("nombre", c.Nombre)
	if res.Error != nil {
		return classify("actualizar categoria", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify("actualizar categoria", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *categoriaRepository) Eliminar(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Categoria{}, id)
	if res.Error != nil {
		return classify("eliminar categoria", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify("eliminar categoria", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *categoriaRepository) ContarProductos(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("categoria_id = ?", id).Count(&n).Error
	return n, classify("contar productos de categoria", err)
}
