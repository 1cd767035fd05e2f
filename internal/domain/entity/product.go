package entity

import "time"

// Estados derivados del stock.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// LowStockThreshold límite fijo: stock positivo ≤ 5 se considera "stock bajo".
const LowStockThreshold = 5

// StatusForStock deriva el estado a partir del stock. El estado nunca lo fija
// el cliente; se recalcula en cada escritura.
func StatusForStock(stock int) string {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

// Product representa un producto del inventario de un usuario (owner).
// Invariante: (owner_id, lower(trim(name))) es único entre productos no
// eliminados. Stock nunca es negativo.
type Product struct {
	ID          string
	OwnerID     string
	Name        string
	Unit        string
	Category    string
	Brand       string
	Stock       int
	Status      string // derivado de Stock
	Image       string // referencia opaca (ruta o URL), el core nunca lee bytes
	Description string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductSummary agregados del inventario visible para un caller.
type ProductSummary struct {
	TotalProducts int
	OutOfStock    int
	LowStock      int
	Categories    int
}
