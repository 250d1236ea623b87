package repositories

import (
	"context"
	"time"

	"shopmart/internal/models"
)

type ProductRepository interface {
	CreateWithStock(ctx context.Context, product *models.Product, quantity int) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	ListStockBelow(ctx context.Context, threshold int) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

// CreateWithStock inserts the product and its single stock row atomically.
// The stock quantity defaults are the caller's concern; last_checked_at is
// set to the insert time.
func (r *productRepo) CreateWithStock(ctx context.Context, product *models.Product, quantity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO products (category_id, name, slug, description, is_digital, is_active, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, product.CategoryID, product.Name, product.Slug, product.Description,
		product.IsDigital, product.IsActive, product.Price).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return err
	}

	stock := &models.Stock{ProductID: product.ID, Quantity: quantity}
	err = tx.QueryRow(ctx, `
		INSERT INTO stock (product_id, quantity, last_checked_at)
		VALUES ($1, $2, NOW())
		RETURNING id, last_checked_at
	`, stock.ProductID, stock.Quantity).Scan(&stock.ID, &stock.LastCheckedAt)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	product.Stock = stock
	return nil
}

// GetByID fetches a product with its stock row. Products created through the
// nested category path have no stock row, so the join is outer and Stock
// stays nil for them.
func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT p.id, p.category_id, p.name, p.slug, p.description, p.is_digital, p.is_active, p.price, p.created_at, p.updated_at,
		       s.id, s.product_id, s.quantity, s.last_checked_at
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.id = $1
	`
	var (
		stockID        *int64
		stockProductID *int64
		stockQuantity  *int
		lastCheckedAt  *time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.CategoryID, &product.Name,
		&product.Slug, &product.Description, &product.IsDigital, &product.IsActive, &product.Price,
		&product.CreatedAt, &product.UpdatedAt,
		&stockID, &stockProductID, &stockQuantity, &lastCheckedAt)
	if err != nil {
		return nil, err
	}
	if stockID != nil {
		product.Stock = &models.Stock{
			ID:            *stockID,
			ProductID:     *stockProductID,
			Quantity:      *stockQuantity,
			LastCheckedAt: *lastCheckedAt,
		}
	}
	return product, nil
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, category_id, name, slug, description, is_digital, is_active, price, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Slug,
			&product.Description, &product.IsDigital, &product.IsActive, &product.Price,
			&product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// ListStockBelow returns active products whose stock sits at or under the
// threshold. Read-only; used by the low-stock sweep.
func (r *productRepo) ListStockBelow(ctx context.Context, threshold int) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.category_id, p.name, p.slug, p.description, p.is_digital, p.is_active, p.price, p.created_at, p.updated_at,
		       s.id, s.product_id, s.quantity, s.last_checked_at
		FROM products p
		JOIN stock s ON s.product_id = p.id
		WHERE p.is_active AND s.quantity <= $1
		ORDER BY s.quantity ASC
	`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		stock := &models.Stock{}
		if err := rows.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Slug,
			&product.Description, &product.IsDigital, &product.IsActive, &product.Price,
			&product.CreatedAt, &product.UpdatedAt,
			&stock.ID, &stock.ProductID, &stock.Quantity, &stock.LastCheckedAt); err != nil {
			return nil, err
		}
		product.Stock = stock
		products = append(products, product)
	}
	return products, rows.Err()
}
