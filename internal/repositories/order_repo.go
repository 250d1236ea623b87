package repositories

import (
	"context"

	"shopmart/internal/models"
)

type OrderRepository interface {
	PlaceOrder(ctx context.Context, user *models.User, lines []*models.OrderLineInput) (*models.Order, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

// PlaceOrder creates the user, the order and its line items inside a single
// transaction. A failure at any step rolls back everything, so no orphan
// user can survive a failed order.
func (r *orderRepo) PlaceOrder(ctx context.Context, user *models.User, lines []*models.OrderLineInput) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, user.Username, user.Email, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	order := &models.Order{UserID: user.ID}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`, order.UserID).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_products (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
		`, order.ID, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		order.Products = append(order.Products, &models.OrderProduct{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}
