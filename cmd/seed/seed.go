package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"catalogo/internal/apierror"
	"catalogo/internal/repository"
	"catalogo/internal/service"
)

// catalogo is the seed file layout. Entries are raw objects so they go
// through the same validation as HTTP payloads.
type catalogo struct {
	Categorias []map[string]any `json:"categorias"`
	Productos  []map[string]any `json:"productos"`
}

type resumen struct {
	Categorias int
	Productos  int
	Errores    int
}

func leerCatalogo(path string) (*catalogo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c catalogo
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	return &c, nil
}

// sembrar creates every category, then every product, through the services.
// Failures are reported on out and counted; they do not stop the load.
func sembrar(ctx context.Context, store repository.Store, cat *catalogo, out io.Writer) resumen {
	var res resumen
	cats := service.NewCategoriaService(store)
	prods := service.NewProductoService(store)

	for i, raw := range cat.Categorias {
		if _, err := cats.Crear(ctx, raw); err != nil {
			reportar(out, "categoria", i, raw, err)
			res.Errores++
			continue
		}
		res.Categorias++
	}
	for i, raw := range cat.Productos {
		if _, err := prods.Crear(ctx, raw); err != nil {
			reportar(out, "producto", i, raw, err)
			res.Errores++
			continue
		}
		res.Productos++
	}
	return res
}

func reportar(out io.Writer, entidad string, i int, raw map[string]any, err error) {
	kind := "Unknown"
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		kind = apiErr.Kind.String()
	}
	fmt.Fprintf(out, "❌ %s #%d (%v): [%s] %s\n", entidad, i, raw["nombre"], kind, err)
	if apiErr != nil {
		for _, is := range apiErr.Issues {
			fmt.Fprintf(out, "     - %s: %s\n", is.Field, is.Message)
		}
	}
}
