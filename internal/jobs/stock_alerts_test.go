package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmart/internal/models"
)

type fakeProductRepo struct {
	lowStock      []*models.Product
	lastThreshold int
	err           error
}

func (f *fakeProductRepo) CreateWithStock(ctx context.Context, product *models.Product, quantity int) error {
	return errors.New("not implemented")
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProductRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProductRepo) ListStockBelow(ctx context.Context, threshold int) ([]*models.Product, error) {
	f.lastThreshold = threshold
	return f.lowStock, f.err
}

func TestCheckLowStock_UsesConfiguredThreshold(t *testing.T) {
	repo := &fakeProductRepo{lowStock: []*models.Product{
		{ID: 1, Name: "Mouse", Stock: &models.Stock{Quantity: 3}},
	}}
	svc := NewStockAlertService(repo, 5)

	products, err := svc.CheckLowStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 5, repo.lastThreshold)
}

func TestCheckLowStock_DefaultThreshold(t *testing.T) {
	repo := &fakeProductRepo{}
	svc := NewStockAlertService(repo, 0)

	_, err := svc.CheckLowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultLowStockThreshold, repo.lastThreshold)
}

func TestCheckLowStock_PropagatesError(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("connection refused")}
	svc := NewStockAlertService(repo, 5)

	products, err := svc.CheckLowStock(context.Background())
	assert.Error(t, err)
	assert.Nil(t, products)
}

// Run must not panic when the sweep fails or finds nothing.
func TestRun_ToleratesFailures(t *testing.T) {
	svc := NewStockAlertService(&fakeProductRepo{err: errors.New("down")}, 5)
	svc.Run(context.Background())

	svc = NewStockAlertService(&fakeProductRepo{}, 5)
	svc.Run(context.Background())
}
