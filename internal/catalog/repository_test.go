package catalog

import (
	"context"
	"testing"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *GormProductRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	require.NoError(t, db.Create(&domain.Category{ID: 1, Name: "Food", Active: true}).Error)
	require.NoError(t, db.Create(&domain.Category{ID: 2, Name: "Toys", Active: true}).Error)

	products := []domain.Product{
		{ID: 1, CategoryId: 1, Name: "Premium Dog Food", Description: "Chicken and rice kibble",
			Price: decimal.RequireFromString("89.90"), StockQuantity: 12, Sku: "FOOD-001", Active: true},
		{ID: 2, CategoryId: 1, Name: "Cat Food", Description: "Salmon pate",
			Price: decimal.RequireFromString("45.00"), StockQuantity: 0, Sku: "FOOD-002", Active: true},
		{ID: 3, CategoryId: 2, Name: "Rope Toy", Description: "Durable cotton rope for dogs",
			Price: decimal.RequireFromString("19.90"), StockQuantity: 30, Sku: "TOY-001", Active: false},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return NewGormProductRepository(db)
}

func TestFindByIDPreloadsCategory(t *testing.T) {
	repo := setupRepo(t)

	product, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Food", product.Category.Name)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByCategoryFilters(t *testing.T) {
	repo := setupRepo(t)

	all, err := repo.FindByCategory(context.Background(), GetProductsByCategoryQuery{CategoryId: 1})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inStock, err := repo.FindByCategory(context.Background(), GetProductsByCategoryQuery{
		CategoryId: 1, InStock: true,
	})
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, "FOOD-001", inStock[0].Sku)

	active, err := repo.FindByCategory(context.Background(), GetProductsByCategoryQuery{
		CategoryId: 2, ActiveOnly: true,
	})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCreateKeepsInactiveFlag(t *testing.T) {
	repo := setupRepo(t)

	product := domain.Product{
		ID: 4, CategoryId: 2, Name: "Squeaky Bone", Description: "Rubber chew toy",
		Price: decimal.RequireFromString("12.90"), StockQuantity: 5, Sku: "TOY-002", Active: false,
	}
	require.NoError(t, repo.Create(context.Background(), &product))

	got, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestFindActive(t *testing.T) {
	repo := setupRepo(t)

	active, err := repo.FindActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Cat Food", active[0].Name)
	assert.Equal(t, "Premium Dog Food", active[1].Name)
}

func TestFindBySku(t *testing.T) {
	repo := setupRepo(t)

	product, err := repo.FindBySku(context.Background(), "TOY-001")
	require.NoError(t, err)
	assert.Equal(t, "Rope Toy", product.Name)

	_, err = repo.FindBySku(context.Background(), "TOY-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchMatchesNameOrDescription(t *testing.T) {
	repo := setupRepo(t)

	byName, err := repo.Search(context.Background(), "ROPE")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Rope Toy", byName[0].Name)

	byDescription, err := repo.Search(context.Background(), "salmon")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Cat Food", byDescription[0].Name)

	dogs, err := repo.Search(context.Background(), "dog")
	require.NoError(t, err)
	assert.Len(t, dogs, 2)
}

func TestDeleteIsSoft(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.Delete(context.Background(), 1))
	_, err := repo.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), domain.ErrNotFound)
}

func TestUpdates(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Updates(context.Background(), 2, map[string]interface{}{
		"stock_quantity": 7, "price": "52.50",
	})
	require.NoError(t, err)

	product, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 7, product.StockQuantity)
	assert.Equal(t, "52.5", product.Price.String())

	err = repo.Updates(context.Background(), 99, map[string]interface{}{"stock_quantity": 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
