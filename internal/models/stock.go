package models

import (
	"time"
)

// Stock is exclusively owned by one product; the row is created in the same
// transaction as the product and lives exactly as long as it does.
type Stock struct {
	ID            int64     `json:"id" db:"id"`
	ProductID     int64     `json:"productId" db:"product_id"`
	Quantity      int       `json:"quantity" db:"quantity"`
	LastCheckedAt time.Time `json:"lastCheckedAt" db:"last_checked_at"`
}
