package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"
)

// OrderHandlers handles user/order placement requests
type OrderHandlers struct {
	orderRepo repositories.OrderRepository
}

func NewOrderHandlers(orderRepo repositories.OrderRepository) *OrderHandlers {
	return &OrderHandlers{orderRepo: orderRepo}
}

// PlaceOrderRequest is the payload for POST /users/orders.
type PlaceOrderRequest struct {
	Username string                  `json:"username"`
	Email    string                  `json:"email"`
	Password string                  `json:"password"`
	Products []models.OrderLineInput `json:"products"`
}

// PlaceOrderResponse bundles the created user and order.
type PlaceOrderResponse struct {
	User  *models.User  `json:"user"`
	Order *models.Order `json:"order"`
}

// PlaceOrder godoc
// @Summary Create a user and an order with line items
// @Description Creates the user, the order and every line item inside one transaction; a failure at any step rolls back all three.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body PlaceOrderRequest true "User and line items"
// @Success 201 {object} PlaceOrderResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /users/orders [post]
func (h *OrderHandlers) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid request format"))
	}
	if req.Username == "" || req.Email == "" {
		return common.JSONError(c, common.Validation("username and email are required"))
	}
	if len(req.Products) == 0 {
		return common.JSONError(c, common.Validation("products must be a non-empty array"))
	}
	for _, line := range req.Products {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return common.JSONError(c, common.Validation("every line item needs a productId and a positive quantity"))
		}
	}

	// Stored as received; hashing is a known gap inherited from the
	// system this replaces.
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	lines := make([]*models.OrderLineInput, 0, len(req.Products))
	for i := range req.Products {
		lines = append(lines, &req.Products[i])
	}

	order, err := h.orderRepo.PlaceOrder(ctx, user, lines)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "order"))
	}

	return c.JSON(http.StatusCreated, PlaceOrderResponse{User: user, Order: order})
}
