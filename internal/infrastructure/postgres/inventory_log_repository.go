package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-app/internal/domain/entity"
	"github.com/jhoicas/inventory-app/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación del puerto InventoryLogRepository
// sobre PostgreSQL.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador de persistencia para el
// historial de movimientos de stock.
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create registra un movimiento de stock.
func (r *InventoryLogRepo) Create(log *entity.InventoryLog) error {
	query := `
		INSERT INTO inventory_logs (id, product_id, old_stock, new_stock, changed_by, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.ProductID, log.OldStock, log.NewStock, log.ChangedBy, log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// ListByProduct devuelve los movimientos de un producto, el más reciente
// primero.
func (r *InventoryLogRepo) ListByProduct(productID string) ([]*entity.InventoryLog, error) {
	query := `
		SELECT id, product_id, old_stock, new_stock, changed_by, "timestamp"
		FROM inventory_logs
		WHERE product_id = $1
		ORDER BY "timestamp" DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLog
	for rows.Next() {
		var l entity.InventoryLog
		if err := rows.Scan(&l.ID, &l.ProductID, &l.OldStock, &l.NewStock, &l.ChangedBy, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
