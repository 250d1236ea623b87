package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmart/internal/common"
	"shopmart/internal/models"
)

type fakeOrderRepo struct {
	placedUser  *models.User
	placedLines []*models.OrderLineInput
	err         error
}

func (f *fakeOrderRepo) PlaceOrder(ctx context.Context, user *models.User, lines []*models.OrderLineInput) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	user.ID = 50
	user.CreatedAt = time.Now()
	f.placedUser = user
	f.placedLines = lines

	order := &models.Order{ID: 70, UserID: user.ID, CreatedAt: user.CreatedAt}
	for _, line := range lines {
		order.Products = append(order.Products, &models.OrderProduct{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return order, nil
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := &fakeOrderRepo{}
	h := NewOrderHandlers(repo)

	c, rec := newCategoryTestContext(t, http.MethodPost, "/users/orders",
		`{"username":"ada","email":"ada@example.com","password":"secret",
		  "products":[{"productId":1,"quantity":2},{"productId":3,"quantity":1}]}`)
	require.NoError(t, h.PlaceOrder(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.placedUser)
	assert.Equal(t, "ada", repo.placedUser.Username)
	require.Len(t, repo.placedLines, 2)

	var resp PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(50), resp.User.ID)
	assert.Equal(t, int64(70), resp.Order.ID)
	assert.Len(t, resp.Order.Products, 2)
}

func TestPlaceOrder_PasswordNeverSerialized(t *testing.T) {
	h := NewOrderHandlers(&fakeOrderRepo{})

	c, rec := newCategoryTestContext(t, http.MethodPost, "/users/orders",
		`{"username":"ada","email":"ada@example.com","password":"secret",
		  "products":[{"productId":1,"quantity":1}]}`)
	require.NoError(t, h.PlaceOrder(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestPlaceOrder_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@b.c","products":[{"productId":1,"quantity":1}]}`},
		{"missing email", `{"username":"ada","products":[{"productId":1,"quantity":1}]}`},
		{"no products", `{"username":"ada","email":"a@b.c","products":[]}`},
		{"missing products", `{"username":"ada","email":"a@b.c"}`},
		{"zero quantity", `{"username":"ada","email":"a@b.c","products":[{"productId":1,"quantity":0}]}`},
		{"missing productId", `{"username":"ada","email":"a@b.c","products":[{"quantity":2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeOrderRepo{}
			h := NewOrderHandlers(repo)

			c, rec := newCategoryTestContext(t, http.MethodPost, "/users/orders", tt.body)
			require.NoError(t, h.PlaceOrder(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, repo.placedUser, "nothing may reach storage on bad input")
		})
	}
}

func TestPlaceOrder_StorageErrorMapped(t *testing.T) {
	repo := &fakeOrderRepo{err: common.Conflict("user already exists", nil)}
	h := NewOrderHandlers(repo)

	c, rec := newCategoryTestContext(t, http.MethodPost, "/users/orders",
		`{"username":"ada","email":"ada@example.com","products":[{"productId":1,"quantity":1}]}`)
	require.NoError(t, h.PlaceOrder(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
