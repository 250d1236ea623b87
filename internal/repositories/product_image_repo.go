package repositories

import (
	"context"

	"shopmart/internal/models"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *models.ProductImage) error
	ListByProduct(ctx context.Context, productID int64) ([]*models.ProductImage, error)
}

type productImageRepo struct {
	db Database
}

func NewProductImageRepo(db Database) ProductImageRepository {
	return &productImageRepo{db: db}
}

func (r *productImageRepo) Create(ctx context.Context, image *models.ProductImage) error {
	query := `
		INSERT INTO product_images (product_id, object_name, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, image.ProductID, image.ObjectName, image.ContentType,
		image.SizeBytes).Scan(&image.ID, &image.CreatedAt)
}

func (r *productImageRepo) ListByProduct(ctx context.Context, productID int64) ([]*models.ProductImage, error) {
	query := `
		SELECT id, product_id, object_name, content_type, size_bytes, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.ProductImage
	for rows.Next() {
		image := &models.ProductImage{}
		if err := rows.Scan(&image.ID, &image.ProductID, &image.ObjectName, &image.ContentType,
			&image.SizeBytes, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
