package models

import (
	"time"
)

// ProductImage is the metadata row for an object stored in MinIO.
type ProductImage struct {
	ID          int64     `json:"id" db:"id"`
	ProductID   int64     `json:"productId" db:"product_id"`
	ObjectName  string    `json:"objectName" db:"object_name"`
	ContentType string    `json:"contentType" db:"content_type"`
	SizeBytes   int64     `json:"sizeBytes" db:"size_bytes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	URL         string    `json:"url,omitempty" db:"-"` // presigned, set on reads
}
