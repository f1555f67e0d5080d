package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laramoda/storefront-api/internal/model"
)

func newTestUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{ID: uuid.New(), Email: email, FirstName: "Ana", LastName: "Souza", Role: model.RoleCustomer}
	require.NoError(t, NewUserRepository(testPool).Upsert(context.Background(), user))
	return user
}

func newTestProduct(t *testing.T, name, category string) *model.Product {
	t.Helper()
	p := &model.Product{
		Name: name, Description: "Produto de teste", Price: decimal.RequireFromString("49.90"),
		Category: category, Images: []string{"/uploads/products/a.png"},
		Colors: []string{"Azul"}, Sizes: []string{"P", "M"}, Stock: 10, IsActive: true,
	}
	require.NoError(t, NewProductRepository(testPool).Create(context.Background(), p))
	return p
}

func TestUserRepo_UpsertAndGet(t *testing.T) {
	cleanupTable(t, allTables...)
	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := newTestUser(t, "ana@example.com")

	user.FirstName = "Ana Clara"
	user.Role = model.RoleAdmin
	require.NoError(t, repo.Upsert(ctx, user))

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ana Clara", found.FirstName)
	assert.True(t, found.IsAdmin())

	other := &model.User{ID: uuid.New(), Email: "ana@example.com", Role: model.RoleCustomer}
	assert.ErrorIs(t, repo.Upsert(ctx, other), ErrDuplicate)
}

func TestProductRepo_CRUD(t *testing.T) {
	cleanupTable(t, allTables...)
	repo := NewProductRepository(testPool)
	ctx := context.Background()

	product := newTestProduct(t, "Vestido", "feminino")
	assert.NotEqual(t, uuid.Nil, product.ID)

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"P", "M"}, found.Sizes)
	assert.True(t, product.Price.Equal(found.Price))

	found.Name = "Vestido Longo"
	found.IsActive = false
	require.NoError(t, repo.Update(ctx, found))

	found, _ = repo.GetByID(ctx, product.ID)
	assert.Equal(t, "Vestido Longo", found.Name)
	assert.False(t, found.IsActive)

	require.NoError(t, repo.Delete(ctx, product.ID))
	found, _ = repo.GetByID(ctx, product.ID)
	assert.Nil(t, found)

	assert.ErrorIs(t, repo.Delete(ctx, product.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, product), ErrNotFound)
}

func TestCartRepo_AddMergesAndScopesByUser(t *testing.T) {
	cleanupTable(t, allTables...)
	cartRepo := NewCartRepository(testPool)
	ctx := context.Background()

	user := newTestUser(t, "cart@example.com")
	stranger := newTestUser(t, "other@example.com")
	product := newTestProduct(t, "Blusa", "feminino")

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1, SelectedColor: "Azul", SelectedSize: "P"}
	require.NoError(t, cartRepo.AddItem(ctx, item))
	again := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2, SelectedColor: "Azul", SelectedSize: "P"}
	require.NoError(t, cartRepo.AddItem(ctx, again))

	items, err := cartRepo.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	assert.ErrorIs(t, cartRepo.DeleteItem(ctx, stranger.ID, items[0].ID), ErrNotFound)
	require.NoError(t, cartRepo.UpdateQuantity(ctx, user.ID, items[0].ID, 5))
	require.NoError(t, cartRepo.Clear(ctx, user.ID))

	items, err = cartRepo.ListItems(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderRepo_SnapshotSurvivesProductDeletion(t *testing.T) {
	cleanupTable(t, allTables...)
	orderRepo := NewOrderRepository(testPool)
	ctx := context.Background()

	user := newTestUser(t, "order@example.com")
	product := newTestProduct(t, "Saia", "feminino")

	order := &model.Order{
		UserID: user.ID, Status: model.OrderStatusPending,
		PaymentMethod: model.PaymentMethodWhatsApp, PaymentStatus: model.PaymentStatusPending,
		Total:        decimal.RequireFromString("99.80"),
		CustomerInfo: model.CustomerInfo{Name: "Ana", Email: "order@example.com", Phone: "11999990000"},
		Items: []model.OrderItem{{
			ProductID: product.ID, Name: product.Name, Price: product.Price, Quantity: 2,
			SelectedColor: "Azul", SelectedSize: "M",
		}},
	}
	require.NoError(t, orderRepo.Create(ctx, order))
	require.NoError(t, NewProductRepository(testPool).Delete(ctx, product.ID))

	found, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Saia", found.Items[0].Name)
	assert.Equal(t, "Ana", found.CustomerInfo.Name)

	require.NoError(t, orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusConfirmed))
	found, _ = orderRepo.GetByID(ctx, order.ID)
	assert.Equal(t, model.OrderStatusConfirmed, found.Status)
	assert.ErrorIs(t, orderRepo.UpdateStatus(ctx, uuid.New(), model.OrderStatusShipped), ErrNotFound)

	history := NewOrderHistoryRepository(testPool)
	require.NoError(t, history.Record(ctx, &model.OrderStatusChange{
		OrderID: order.ID, FromStatus: model.OrderStatusPending, ToStatus: model.OrderStatusConfirmed,
		ChangedAt: time.Now(),
	}))
	changes, err := history.ListByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, model.OrderStatusConfirmed, changes[0].ToStatus)
}
