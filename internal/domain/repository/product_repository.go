package repository

import "github.com/jhoicas/inventory-app/internal/domain/entity"

// ProductFilter criterios de visibilidad y búsqueda para listados.
// OwnerID vacío significa sin filtro de dueño (alcance admin).
type ProductFilter struct {
	OwnerID  string
	Search   string // substring case-insensitive sobre name
	Category string // igualdad case-insensitive con trim
	LowStock bool   // 0 < stock <= LowStockThreshold
	SortBy   string // name | stock | category | brand (otro valor cae a name)
	SortDesc bool
	Limit    int // 0 = sin paginación
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas excluyen productos marcados como eliminados.
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByID busca por id dentro del alcance del owner; ownerID vacío = sin
	// filtro (admin). Devuelve nil, nil si no existe bajo ese alcance.
	GetByID(id, ownerID string) (*entity.Product, error)
	// FindByOwnerAndName busca por lower(trim(name)); ownerID vacío hace la
	// comprobación de unicidad global.
	FindByOwnerAndName(ownerID, name string) (*entity.Product, error)
	List(f ProductFilter) ([]*entity.Product, error)
	Count(f ProductFilter) (int, error)
	Summary(ownerID string) (*entity.ProductSummary, error)
	Update(product *entity.Product) error
	// Delete borra físicamente dentro del alcance y devuelve filas afectadas.
	Delete(id, ownerID string) (int64, error)
}
