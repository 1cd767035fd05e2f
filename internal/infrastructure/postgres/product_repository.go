package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-app/internal/domain"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
	"github.com/jhoicas/inventory-app/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, owner_id, name, unit, category, brand, stock, status, image, description, is_deleted, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Un (owner, nombre) repetido entre
// productos no eliminados devuelve domain.ErrDuplicateName.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, owner_id, name, unit, category, brand, stock, status, image, description, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.OwnerID, product.Name, product.Unit, product.Category,
		product.Brand, product.Stock, product.Status, product.Image,
		product.Description, product.IsDeleted, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por id dentro del alcance del owner.
// ownerID vacío omite el filtro (admin).
func (r *ProductRepo) GetByID(id, ownerID string) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 AND is_deleted = FALSE`, productColumns)
	args := []any{id}
	if ownerID != "" {
		query += " AND owner_id = $2"
		args = append(args, ownerID)
	}
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(scanTargets(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// FindByOwnerAndName busca por nombre normalizado (lower + trim) dentro del
// alcance indicado; ownerID vacío busca globalmente.
func (r *ProductRepo) FindByOwnerAndName(ownerID, name string) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE lower(trim(name)) = lower(trim($1)) AND is_deleted = FALSE`, productColumns)
	args := []any{name}
	if ownerID != "" {
		query += " AND owner_id = $2"
		args = append(args, ownerID)
	}
	query += " LIMIT 1"
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(scanTargets(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &p, nil
}

// List lista productos bajo el filtro. Limit 0 devuelve todo el conjunto.
func (r *ProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) {
	where, args := buildFilter(f)
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s %s`,
		productColumns, where, sortColumn(f.SortBy), dir)
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(scanTargets(&p)...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta los productos bajo el mismo predicado que List.
func (r *ProductRepo) Count(f repository.ProductFilter) (int, error) {
	where, args := buildFilter(f)
	var total int
	err := r.q.QueryRow(context.Background(),
		fmt.Sprintf(`SELECT COUNT(*) FROM products %s`, where), args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Summary agregados del inventario dentro del alcance del owner.
func (r *ProductRepo) Summary(ownerID string) (*entity.ProductSummary, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock = 0),
		       COUNT(*) FILTER (WHERE stock > 0 AND stock <= %d),
		       COUNT(DISTINCT lower(trim(category)))
		FROM products WHERE is_deleted = FALSE`, entity.LowStockThreshold)
	args := []any{}
	if ownerID != "" {
		query += " AND owner_id = $1"
		args = append(args, ownerID)
	}
	var s entity.ProductSummary
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.TotalProducts, &s.OutOfStock, &s.LowStock, &s.Categories,
	)
	if err != nil {
		return nil, fmt.Errorf("product summary: %w", err)
	}
	return &s, nil
}

// Update actualiza un producto existente por id.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, unit = $3, category = $4, brand = $5, stock = $6,
		    status = $7, image = $8, description = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Unit, product.Category, product.Brand,
		product.Stock, product.Status, product.Image, product.Description,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete borra físicamente dentro del alcance del owner y devuelve filas
// afectadas. ownerID vacío omite el filtro (admin).
func (r *ProductRepo) Delete(id, ownerID string) (int64, error) {
	query := `DELETE FROM products WHERE id = $1`
	args := []any{id}
	if ownerID != "" {
		query += " AND owner_id = $2"
		args = append(args, ownerID)
	}
	cmd, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// buildFilter arma el WHERE parametrizado común a List y Count.
func buildFilter(f repository.ProductFilter) (string, []any) {
	clauses := []string{"is_deleted = FALSE"}
	args := []any{}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("lower(name) LIKE $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("lower(trim(category)) = lower(trim($%d))", len(args)))
	}
	if f.LowStock {
		clauses = append(clauses, fmt.Sprintf("stock > 0 AND stock <= %d", entity.LowStockThreshold))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// sortColumn lista blanca de columnas ordenables; cualquier otro valor cae
// a name para que nunca se interpole entrada del cliente en el SQL.
func sortColumn(s string) string {
	switch s {
	case "name", "stock", "category", "brand":
		return s
	default:
		return "name"
	}
}

func scanTargets(p *entity.Product) []any {
	return []any{
		&p.ID, &p.OwnerID, &p.Name, &p.Unit, &p.Category, &p.Brand,
		&p.Stock, &p.Status, &p.Image, &p.Description, &p.IsDeleted,
		&p.CreatedAt, &p.UpdatedAt,
	}
}
