package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"catalogo/internal/apierror"

	"github.com/gin-gonic/gin"
)

// bindRaw decodes the JSON body into a generic map so the validation package
// can report missing fields and wrong types itself. An empty body decodes to
// an empty map. Returns false after queuing the error on c; the caller should
// return immediately.
func bindRaw(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apierror.FieldIssue("body", "JSON inválido", nil))
		return nil, false
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, true
}

// parseID reads the :id path parameter. Only positive integers are accepted.
func parseID(c *gin.Context) (uint, bool) {
	v := c.Param("id")
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(apierror.FieldIssue("id", "ID inválido: "+v, v))
		return 0, false
	}
	return uint(id), true
}

// parseBoolQuery reads an optional true/false query parameter, case-insensitively.
// A missing parameter yields nil.
func parseBoolQuery(c *gin.Context, name string) (*bool, bool) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, true
	}
	switch strings.ToLower(v) {
	case "true":
		b := true
		return &b, true
	case "false":
		b := false
		return &b, true
	}
	_ = c.Error(apierror.FieldIssue(name, "Parámetro inválido: "+v, v))
	return nil, false
}
