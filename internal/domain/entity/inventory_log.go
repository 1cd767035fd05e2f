package entity

import "time"

// InventoryLog entrada del historial de cambios de stock. Append-only: se
// crea una entrada por actualización en la que el stock realmente cambia,
// nunca en la creación del producto, y nunca se modifica ni se borra.
type InventoryLog struct {
	ID        string
	ProductID string
	OldStock  int
	NewStock  int
	ChangedBy string // email del caller, o "admin" como fallback
	Timestamp time.Time
}
