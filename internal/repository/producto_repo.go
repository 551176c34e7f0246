package repository

import (
	"context"

	"catalogo/internal/dto"
	"catalogo/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	// FindByNombre matches case-insensitively.
	FindByNombre(ctx context.Context, nombre string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	// Update writes every mutable column; fecha_ingreso is never touched.
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uint) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return classify("crear producto", r.db.WithContext(ctx).Create(p).Error)
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, classify("obtener producto", err)
	}
	return &p, nil
}

func (r *productoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var p model.Producto
	// SQLite lower() folds ASCII only; "LÁCTEOS" and "lácteos" do not match there.
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&p).Error
	if err != nil {
		return nil, classify("obtener producto por nombre", err)
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	productos := []model.Producto{}
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Disponible != nil {
		q = q.Where("disponible = ?", *filter.Disponible)
	}
	err := q.Order("id ASC").Find(&productos).Error
	return productos, classify("listar productos", err)
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"nombre":       p.Nombre,
		"precio":       p.Precio,
		"descripcion":  p.Descripcion,
		"disponible":   p.Disponible,
		"categoria_id": p.CategoriaID,
	})
	if res.Error != nil {
		return classify("actualizar producto", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify("actualizar producto", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *productoRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, id)
	if res.Error != nil {
		return classify("eliminar producto", res.Error)
	}
	if res.RowsAffected == 0 {
		return classify("eliminar producto", gorm.ErrRecordNotFound)
	}
	return nil
}
