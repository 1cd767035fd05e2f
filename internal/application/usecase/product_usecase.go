package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-app/internal/application/dto"
	"github.com/jhoicas/inventory-app/internal/domain"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
	"github.com/jhoicas/inventory-app/internal/domain/repository"
)

// DefaultPageLimit tamaño de página por defecto para listados.
const DefaultPageLimit = 10

// ProductUseCase CRUD de productos con alcance por owner: un admin ve todos
// los productos; cualquier otro caller solo los suyos. Las actualizaciones
// de stock dejan rastro en el historial de inventario.
type ProductUseCase struct {
	products repository.ProductRepository
	logs     repository.InventoryLogRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, logs repository.InventoryLogRepository) *ProductUseCase {
	return &ProductUseCase{products: products, logs: logs}
}

// scopeOwner devuelve el filtro de owner para el caller: vacío (sin filtro)
// para admin, su propio id para el resto.
func scopeOwner(caller dto.Caller) string {
	if caller.IsAdmin() {
		return ""
	}
	return caller.UserID
}

// List devuelve una página de productos visibles. El total se calcula con
// una consulta de conteo separada bajo el mismo predicado; entre ambas no
// hay aislamiento de snapshot.
func (uc *ProductUseCase) List(caller dto.Caller, q dto.ListProductsQuery) (*dto.ProductListResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	filter := repository.ProductFilter{
		OwnerID:  scopeOwner(caller),
		Search:   q.Search,
		Category: q.Category,
		LowStock: q.LowStock,
		SortBy:   sortColumn(q.SortBy),
		SortDesc: strings.EqualFold(q.SortOrder, "desc"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	total, err := uc.products.Count(filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.products.List(filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Data:       items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Search lista sin paginar los productos visibles cuyo nombre contiene el
// término, case-insensitive.
func (uc *ProductUseCase) Search(caller dto.Caller, name string) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(repository.ProductFilter{
		OwnerID: scopeOwner(caller),
		Search:  name,
		SortBy:  "name",
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Summary agregados del inventario visible para el caller.
func (uc *ProductUseCase) Summary(caller dto.Caller) (*dto.ProductSummaryResponse, error) {
	s, err := uc.products.Summary(scopeOwner(caller))
	if err != nil {
		return nil, err
	}
	return &dto.ProductSummaryResponse{
		TotalProducts: s.TotalProducts,
		OutOfStock:    s.OutOfStock,
		LowStock:      s.LowStock,
		Categories:    s.Categories,
	}, nil
}

// Create crea un producto para el caller. El owner es siempre el caller,
// incluso siendo admin; la comprobación de nombre duplicado sí usa el
// alcance de visibilidad (global para admin).
func (uc *ProductUseCase) Create(caller dto.Caller, in dto.ProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	stock := int(in.Stock)
	if name == "" || strings.TrimSpace(in.Unit) == "" || strings.TrimSpace(in.Category) == "" ||
		strings.TrimSpace(in.Brand) == "" || stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.products.FindByOwnerAndName(scopeOwner(caller), name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		OwnerID:     caller.UserID,
		Name:        name,
		Unit:        in.Unit,
		Category:    in.Category,
		Brand:       in.Brand,
		Stock:       stock,
		Status:      entity.StatusForStock(stock),
		Image:       in.Image,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto visible para el caller. Un producto ajeno es
// indistinguible de uno inexistente. Si el stock cambia, primero inserta la
// entrada de historial y después actualiza la fila: secuencial de mejor
// esfuerzo, sin transacción, igual que el resto de pares de escritura.
func (uc *ProductUseCase) Update(caller dto.Caller, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	stock := int(in.Stock)
	if name == "" || strings.TrimSpace(in.Unit) == "" || strings.TrimSpace(in.Category) == "" ||
		strings.TrimSpace(in.Brand) == "" || stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	scope := scopeOwner(caller)
	existing, err := uc.products.GetByID(id, scope)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	conflict, err := uc.products.FindByOwnerAndName(scope, name)
	if err != nil {
		return nil, err
	}
	if conflict != nil && conflict.ID != existing.ID {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	if existing.Stock != stock {
		entry := &entity.InventoryLog{
			ID:        uuid.New().String(),
			ProductID: existing.ID,
			OldStock:  existing.Stock,
			NewStock:  stock,
			ChangedBy: actorLabel(caller),
			Timestamp: now,
		}
		if err := uc.logs.Create(entry); err != nil {
			log.Warn().Err(err).Str("product_id", existing.ID).
				Msg("no se pudo registrar el historial de stock")
		}
	}

	existing.Name = name
	existing.Unit = in.Unit
	existing.Category = in.Category
	existing.Brand = in.Brand
	existing.Stock = stock
	existing.Status = entity.StatusForStock(stock)
	existing.Description = in.Description
	if in.Image != "" {
		existing.Image = in.Image
	}
	existing.UpdatedAt = now

	if err := uc.products.Update(existing); err != nil {
		return nil, err
	}
	return toProductResponse(existing), nil
}

// Delete borra un producto visible para el caller. Cero filas afectadas se
// reporta como no encontrado, también para productos ajenos.
func (uc *ProductUseCase) Delete(caller dto.Caller, id string) error {
	affected, err := uc.products.Delete(id, scopeOwner(caller))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// History devuelve el historial de stock de un producto, más reciente
// primero. No filtra por owner: cualquier caller autenticado puede leer el
// historial de cualquier producto.
func (uc *ProductUseCase) History(productID string) ([]dto.HistoryEntryResponse, error) {
	list, err := uc.logs.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryEntryResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.HistoryEntryResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			OldStock:  l.OldStock,
			NewStock:  l.NewStock,
			ChangedBy: l.ChangedBy,
			Timestamp: l.Timestamp,
		})
	}
	return items, nil
}

// ImportCSV procesa cada fila en una goroutine independiente, sin orden ni
// atomicidad entre filas. Nombre en blanco se salta en silencio; duplicado
// por (owner, nombre) se salta y se anota en duplicates; cualquier fallo de
// insert también cuenta como skipped. Siempre added + skipped == filas.
// Las filas importadas pertenecen al caller aunque sea admin.
func (uc *ProductUseCase) ImportCSV(caller dto.Caller, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return &dto.ImportResult{Duplicates: []dto.DuplicateRow{}}, nil
	}

	cols := headerIndex(records[0])
	rows := records[1:]

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = dto.ImportResult{Duplicates: []dto.DuplicateRow{}}
	)

	for _, record := range rows {
		wg.Add(1)
		go func(record []string) {
			defer wg.Done()

			field := func(name string) string {
				idx, ok := cols[name]
				if !ok || idx >= len(record) {
					return ""
				}
				return record[idx]
			}

			name := strings.TrimSpace(field("name"))
			if name == "" {
				mu.Lock()
				result.Skipped++
				mu.Unlock()
				return
			}

			existing, err := uc.products.FindByOwnerAndName(caller.UserID, name)
			if err != nil {
				mu.Lock()
				result.Skipped++
				mu.Unlock()
				return
			}
			if existing != nil {
				mu.Lock()
				result.Skipped++
				result.Duplicates = append(result.Duplicates, dto.DuplicateRow{Name: name, ExistingID: existing.ID})
				mu.Unlock()
				return
			}

			stock, convErr := strconv.Atoi(strings.TrimSpace(field("stock")))
			if convErr != nil {
				stock = 0
			}
			now := time.Now()
			product := &entity.Product{
				ID:          uuid.New().String(),
				OwnerID:     caller.UserID,
				Name:        name,
				Unit:        field("unit"),
				Category:    field("category"),
				Brand:       field("brand"),
				Stock:       stock,
				Status:      entity.StatusForStock(stock),
				Image:       field("image"),
				Description: field("description"),
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			// dos filas iguales en el mismo archivo compiten: el índice único
			// rechaza la segunda inserción y esta cuenta como skipped
			err = uc.products.Create(product)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Skipped++
				return
			}
			result.Added++
		}(record)
	}
	wg.Wait()

	return &result, nil
}

// ExportCSV serializa los productos visibles para el caller. Cada campo va
// entre comillas dobles con las comillas internas duplicadas; el orden de
// columnas es fijo.
func (uc *ProductUseCase) ExportCSV(caller dto.Caller) (string, error) {
	list, err := uc.products.List(repository.ProductFilter{
		OwnerID: scopeOwner(caller),
		SortBy:  "name",
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("name,unit,category,brand,stock,status,image,description\n")
	lines := make([]string, 0, len(list))
	for _, p := range list {
		fields := []string{
			p.Name, p.Unit, p.Category, p.Brand,
			strconv.Itoa(p.Stock), p.Status, p.Image, p.Description,
		}
		for i, v := range fields {
			fields[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String(), nil
}

func actorLabel(caller dto.Caller) string {
	if caller.Email != "" {
		return caller.Email
	}
	return "admin"
}

func sortColumn(s string) string {
	switch s {
	case "name", "stock", "category", "brand":
		return s
	default:
		return "name"
	}
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Unit:        p.Unit,
		Category:    p.Category,
		Brand:       p.Brand,
		Stock:       p.Stock,
		Status:      p.Status,
		Image:       p.Image,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
