package dto

import (
	"strconv"
	"strings"

	"github.com/jhoicas/inventory-app/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta genérica con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// Caller identidad del solicitante autenticado, extraída del JWT por el
// middleware de auth.
type Caller struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// IsAdmin indica si el caller tiene el rol elevado que omite el filtro de owner.
func (c Caller) IsAdmin() bool {
	return entity.NormalizeRole(c.Role) == entity.RoleAdmin
}

// FlexInt entero que llega como número JSON, cadena JSON o campo de
// formulario. Un valor no numérico se normaliza a 0 en lugar de fallar;
// los negativos se conservan para que la validación los rechace después.
type FlexInt int

// UnmarshalJSON acepta tanto `5` como `"5"`; `"abc"` se normaliza a 0.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// UnmarshalText cubre el binding de formularios multipart/urlencoded.
func (f *FlexInt) UnmarshalText(b []byte) error {
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}
