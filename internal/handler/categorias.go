package handler

import (
	"fmt"
	"net/http"

	"catalogo/internal/dto"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Listar GET /categorias
func (h *CategoriasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	msg := "Categorías encontradas"
	if len(resp) == 0 {
		msg = "No hay categorías"
	}
	c.JSON(http.StatusOK, dto.OK(resp, msg))
}

// ObtenerPorID GET /categorias/:id
func (h *CategoriasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp, fmt.Sprintf("Categoría con ID %d encontrada", id)))
}

// Crear POST /categorias
func (h *CategoriasHandler) Crear(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), raw)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp, "Categoría creada exitosamente"))
}

// Actualizar PUT /categorias/:id
func (h *CategoriasHandler) Actualizar(c *gin.Context) {
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
	c.JSON(http.StatusOK, dto.OK(resp, "Categoría actualizada exitosamente"))
}

// Eliminar DELETE /categorias/:id
func (h *CategoriasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil, "Categoría eliminada"))
}
