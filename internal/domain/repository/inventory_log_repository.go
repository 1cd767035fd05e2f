package repository

import "github.com/jhoicas/inventory-app/internal/domain/entity"

// InventoryLogRepository define el puerto de persistencia para el historial
// de stock (DIP). Solo inserción y lectura: el log es append-only.
type InventoryLogRepository interface {
	Create(log *entity.InventoryLog) error
	// ListByProduct devuelve el historial de un producto, más reciente primero.
	ListByProduct(productID string) ([]*entity.InventoryLog, error)
}
