package service

import (
	"errors"
	"fmt"

	"catalogo/internal/apierror"
)

const msgValidacion = "Error de validación"

func productoNoEncontrado(id uint) error {
	return apierror.NotFound(fmt.Sprintf("No se encontró el producto con ID %d", id))
}

func productoDuplicado(nombre string) error {
	return apierror.Duplicate(
		fmt.Sprintf("Ya existe un producto con el nombre '%s'", nombre),
		"nombre", nombre, "producto",
	)
}

func categoriaNoEncontrada(id uint) error {
	return apierror.NotFound(fmt.Sprintf("Categoría con ID %d no encontrada", id))
}

func categoriaInexistente(nombre string) error {
	return apierror.NotFound(fmt.Sprintf("Categoría '%s' no encontrada.", nombre))
}

func categoriaDuplicada(nombre string) error {
	return apierror.Duplicate(
		fmt.Sprintf("Ya existe una categoría con el nombre '%s'", nombre),
		"nombre", nombre, "categoria",
	)
}

func categoriaConProductos(id uint) error {
	return apierror.Validation(
		"No se puede eliminar la categoría porque tiene productos asignados",
		[]apierror.Issue{{
			Field:    "categoriaId",
			Message:  fmt.Sprintf("La categoría %d tiene productos asignados", id),
			Received: id,
		}},
	)
}

// dominio leaves service errors untouched and wraps anything else (raw
// repository or commit failures) as a storage failure for op.
func dominio(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return err
	}
	return apierror.Storage(op, err)
}
