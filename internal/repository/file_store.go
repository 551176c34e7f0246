package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"catalogo/internal/dto"
	"catalogo/internal/model"
)

// FileStore is a JSON file-backed Store used when no SQL database is
// configured. The whole catalog is kept in memory and rewritten on every
// committed change. Transactions hold the mutex and restore a snapshot on error.
type FileStore struct {
	mu   sync.Mutex
	path string
	data *datos
}

// compile-time assertion
var _ Store = (*FileStore)(nil)

type datos struct {
	Categorias []model.Categoria `json:"categorias"`
	Productos  []model.Producto  `json:"productos"`
}

// NewFileStore constructs a FileStore at the given path. If the file exists it will be loaded.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: &datos{}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, s.data); err != nil {
		return fmt.Errorf("leer %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Categorias() CategoriaRepository { return fileCategorias{s.access} }

func (s *FileStore) Productos() ProductoRepository { return fileProductos{s.access} }

func (s *FileStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &fileTx{d: s.data}
	if err := fn(tx); err != nil {
		s.data = snapshot
		return err
	}
	if tx.dirty {
		if err := s.save(); err != nil {
			s.data = snapshot
			return fmt.Errorf("guardar %s: %w", s.path, err)
		}
	}
	return nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

// access runs a single statement outside an explicit transaction.
func (s *FileStore) access(ctx context.Context, write bool, fn func(d *datos) error) error {
	if !write {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn(s.data)
	}
	return s.WithTx(ctx, func(tx Store) error {
		return tx.(*fileTx).access(ctx, true, fn)
	})
}

// fileTx is the Store handed to WithTx callbacks. The FileStore mutex is
// already held, so it touches the data directly.
type fileTx struct {
	d     *datos
	dirty bool
}

func (t *fileTx) Categorias() CategoriaRepository { return fileCategorias{t.access} }

func (t *fileTx) Productos() ProductoRepository { return fileProductos{t.access} }

func (t *fileTx) WithTx(_ context.Context, fn func(tx Store) error) error { return fn(t) }

func (t *fileTx) Ping(ctx context.Context) error { return ctx.Err() }

func (t *fileTx) access(ctx context.Context, write bool, fn func(d *datos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if write {
		t.dirty = true
	}
	return fn(t.d)
}

type accessFunc func(ctx context.Context, write bool, fn func(d *datos) error) error

// ── datos ────────────────────────────────────────────────────────────────────

func (d *datos) clone() *datos {
	return &datos{
		Categorias: append([]model.Categoria(nil), d.Categorias...),
		Productos:  append([]model.Producto(nil), d.Productos...),
	}
}

func mismoNombre(a, b string) bool { return strings.EqualFold(a, b) }

func (d *datos) categoriaIdx(id uint) int {
	for i, c := range d.Categorias {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (d *datos) productoIdx(id uint) int {
	for i, p := range d.Productos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (d *datos) siguienteCategoriaID() uint {
	var max uint
	for _, c := range d.Categorias {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

func (d *datos) siguienteProductoID() uint {
	var max uint
	for _, p := range d.Productos {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func (d *datos) nombreCategoriaOcupado(nombre string, excepto uint) bool {
	for _, c := range d.Categorias {
		if c.ID != excepto && mismoNombre(c.Nombre, nombre) {
			return true
		}
	}
	return false
}

func (d *datos) nombreProductoOcupado(nombre string, excepto uint) bool {
	for _, p := range d.Productos {
		if p.ID != excepto && mismoNombre(p.Nombre, nombre) {
			return true
		}
	}
	return false
}

// ── Categorias ───────────────────────────────────────────────────────────────

type fileCategorias struct{ access accessFunc }

func (r fileCategorias) Crear(ctx context.Context, c *model.Categoria) error {
	return r.access(ctx, true, func(d *datos) error {
		if d.nombreCategoriaOcupado(c.Nombre, 0) {
			return fmt.Errorf("crear categoria: %w", ErrDuplicate)
		}
		c.ID = d.siguienteCategoriaID()
		d.Categorias = append(d.Categorias, *c)
		return nil
	})
}

func (r fileCategorias) Listar(ctx context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.access(ctx, false, func(d *datos) error {
		list = append([]model.Categoria{}, d.Categorias...)
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

func (r fileCategorias) ObtenerPorID(ctx context.Context, id uint) (*model.Categoria, error) {
	var out *model.Categoria
	err := r.access(ctx, false, func(d *datos) error {
		i := d.categoriaIdx(id)
		if i < 0 {
			return fmt.Errorf("obtener categoria: %w", ErrNotFound)
		}
		c := d.Categorias[i]
		out = &c
		return nil
	})
	return out, err
}

func (r fileCategorias) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var out *model.Categoria
	err := r.access(ctx, false, func(d *datos) error {
		for _, c := range d.Categorias {
			if mismoNombre(c.Nombre, nombre) {
				c := c
				out = &c
				return nil
			}
		}
		return fmt.Errorf("obtener categoria por nombre: %w", ErrNotFound)
	})
	return out, err
}

func (r fileCategorias) Actualizar(ctx context.Context, c *model.Categoria) error {
	return r.access(ctx, true, func(d *datos) error {
		i := d.categoriaIdx(c.ID)
		if i < 0 {
			return fmt.Errorf("actualizar categoria: %w", ErrNotFound)
		}
		if d.nombreCategoriaOcupado(c.Nombre, c.ID) {
			return fmt.Errorf("actualizar categoria: %w", ErrDuplicate)
		}
		d.Categorias[i].Nombre = c.Nombre
		return nil
	})
}

func (r fileCategorias) Eliminar(ctx context.Context, id uint) error {
	return r.access(ctx, true, func(d *datos) error {
		i := d.categoriaIdx(id)
		if i < 0 {
			return fmt.Errorf("eliminar categoria: %w", ErrNotFound)
		}
		for _, p := range d.Productos {
			if p.CategoriaID == id {
				return fmt.Errorf("eliminar categoria: %w", ErrForeignKey)
			}
		}
		d.Categorias = append(d.Categorias[:i], d.Categorias[i+1:]...)
		return nil
	})
}

func (r fileCategorias) ContarProductos(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.access(ctx, false, func(d *datos) error {
		for _, p := range d.Productos {
			if p.CategoriaID == id {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Productos ────────────────────────────────────────────────────────────────

type fileProductos struct{ access accessFunc }

func (r fileProductos) Create(ctx context.Context, p *model.Producto) error {
	return r.access(ctx, true, func(d *datos) error {
		if d.nombreProductoOcupado(p.Nombre, 0) {
			return fmt.Errorf("crear producto: %w", ErrDuplicate)
		}
		if d.categoriaIdx(p.CategoriaID) < 0 {
			return fmt.Errorf("crear producto: %w", ErrForeignKey)
		}
		p.ID = d.siguienteProductoID()
		if p.FechaIngreso.IsZero() {
			p.FechaIngreso = time.Now().UTC()
		}
		d.Productos = append(d.Productos, *p)
		return nil
	})
}

func (r fileProductos) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var out *model.Producto
	err := r.access(ctx, false, func(d *datos) error {
		i := d.productoIdx(id)
		if i < 0 {
			return fmt.Errorf("obtener producto: %w", ErrNotFound)
		}
		p := d.Productos[i]
		out = &p
		return nil
	})
	return out, err
}

func (r fileProductos) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var out *model.Producto
	err := r.access(ctx, false, func(d *datos) error {
		for _, p := range d.Productos {
			if mismoNombre(p.Nombre, nombre) {
				p := p
				out = &p
				return nil
			}
		}
		return fmt.Errorf("obtener producto por nombre: %w", ErrNotFound)
	})
	return out, err
}

func (r fileProductos) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	out := []model.Producto{}
	err := r.access(ctx, false, func(d *datos) error {
		for _, p := range d.Productos {
			if filter.Disponible != nil && p.Disponible != *filter.Disponible {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r fileProductos) Update(ctx context.Context, p *model.Producto) error {
	return r.access(ctx, true, func(d *datos) error {
		i := d.productoIdx(p.ID)
		if i < 0 {
			return fmt.Errorf("actualizar producto: %w", ErrNotFound)
		}
		if d.nombreProductoOcupado(p.Nombre, p.ID) {
			return fmt.Errorf("actualizar producto: %w", ErrDuplicate)
		}
		if d.categoriaIdx(p.CategoriaID) < 0 {
			return fmt.Errorf("actualizar producto: %w", ErrForeignKey)
		}
		actual := &d.Productos[i]
		actual.Nombre = p.Nombre
		actual.Precio = p.Precio
		actual.Descripcion = p.Descripcion
		actual.Disponible = p.Disponible
		actual.CategoriaID = p.CategoriaID
		return nil
	})
}

func (r fileProductos) Delete(ctx context.Context, id uint) error {
	return r.access(ctx, true, func(d *datos) error {
		i := d.productoIdx(id)
		if i < 0 {
			return fmt.Errorf("eliminar producto: %w", ErrNotFound)
		}
		d.Productos = append(d.Productos[:i], d.Productos[i+1:]...)
		return nil
	})
}
