package models

import (
	"time"
)

type Order struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"userId" db:"user_id"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	Products  []*OrderProduct `json:"orderProducts,omitempty" db:"-"`
}

// OrderProduct links an order to a product with a quantity. Line items are
// written in the same transaction as their order.
type OrderProduct struct {
	OrderID   int64 `json:"orderId" db:"order_id"`
	ProductID int64 `json:"productId" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// OrderLineInput is one entry of the products array in a placement request.
type OrderLineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
