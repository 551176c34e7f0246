package handler

import (
	"fmt"
	"net/http"

	"catalogo/internal/dto"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar GET /productos[?disponible=true|false]
func (h *ProductosHandler) Listar(c *gin.Context) {
	disponible, ok := parseBoolQuery(c, "disponible")
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), dto.ProductoFilter{Disponible: disponible})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp, mensajeListado(len(resp), disponible)))
}

// ListarDisponibles GET /productos/disponibles
func (h *ProductosHandler) ListarDisponibles(c *gin.Context) {
	resp, err := h.svc.ListarDisponibles(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	disponible := true
	c.JSON(http.StatusOK, dto.OK(resp, mensajeListado(len(resp), &disponible)))
}

// ObtenerPorID GET /productos/:id
func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp, fmt.Sprintf("Se ha encontrado el producto '%s'", resp.Nombre)))
}

// Crear POST /productos
func (h *ProductosHandler) Crear(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), raw)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp, "Producto creado exitosamente"))
}

// Actualizar PUT|PATCH /productos/:id
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, raw)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp, "Producto actualizado exitosamente"))
}

// Eliminar DELETE /productos/:id
func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil, "Producto eliminado exitosamente"))
}

func mensajeListado(n int, disponible *bool) string {
	sufijo := ""
	if disponible != nil {
		if *disponible {
			sufijo = " disponibles"
		} else {
			sufijo = " no disponibles"
		}
	}
	if n == 0 {
		return "No se han encontrado productos" + sufijo + "."
	}
	return "Productos" + sufijo + " encontrados."
}
