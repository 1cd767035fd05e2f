package dto

import "time"

// ProductRequest entrada para crear o actualizar un producto. Stock tolera
// valores no numéricos (se normalizan a 0). Image es la referencia textual;
// cuando se sube un archivo, el handler la reemplaza por la ruta guardada.
type ProductRequest struct {
	Name        string  `json:"name" form:"name"`
	Unit        string  `json:"unit" form:"unit"`
	Category    string  `json:"category" form:"category"`
	Brand       string  `json:"brand" form:"brand"`
	Stock       FlexInt `json:"stock" form:"stock"`
	Description string  `json:"description" form:"description"`
	Image       string  `json:"image" form:"image"`
}

// ListProductsQuery parámetros de listado paginado.
type ListProductsQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	Category  string `query:"category"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	LowStock  bool   `query:"lowStock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse página de productos con metadatos de paginación.
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
}

// ProductSummaryResponse agregados del inventario visible.
type ProductSummaryResponse struct {
	TotalProducts int `json:"totalProducts"`
	OutOfStock    int `json:"outOfStockCount"`
	LowStock      int `json:"lowStockCount"`
	Categories    int `json:"categoryCount"`
}

// HistoryEntryResponse entrada del historial de stock de un producto.
type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// DuplicateRow fila de CSV saltada porque el nombre ya existía.
type DuplicateRow struct {
	Name       string `json:"name"`
	ExistingID string `json:"existingId"`
}

// ImportResult resumen de una importación CSV. Siempre added + skipped ==
// número de filas de entrada; duplicates es un subconjunto de los skips.
type ImportResult struct {
	Added      int            `json:"added"`
	Skipped    int            `json:"skipped"`
	Duplicates []DuplicateRow `json:"duplicates"`
}
