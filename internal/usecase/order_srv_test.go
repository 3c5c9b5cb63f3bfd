package usecase

import (
	"context"
	"testing"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newOrderService(t *testing.T) (OrderService, *fakeUserRepo, *fakeProductRepo, *fakeOrderRepo) {
	t.Helper()

	repo, users, products, orders := newTestRepo()
	config := &utils.Config{
		Shipping: utils.ShippingConfig{ExpressFee: 50},
	}

	service := NewOrderService(repo, config, &fakeMailer{}, zap.NewNop())
	return service, users, products, orders
}

func seedUserWithCart(users *fakeUserRepo, lines ...entity.CartLine) *entity.User {
	return users.put(&entity.User{
		Name:       "Asha",
		Email:      "asha@example.com",
		IsVerified: true,
		Role:       entity.RoleUser,
		Cart:       lines,
	})
}

func TestCreateOrderComputesTotalFromCatalog(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 120, Quantity: 10})
	honey := products.put(&entity.Product{Name: "Raw Honey", Price: 450, Quantity: 5})
	user := seedUserWithCart(users)

	order, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products: []request.OrderItemPayload{
			{ProductID: eggs.ID.Hex(), Quantity: 2},
			{ProductID: honey.ID.Hex(), Quantity: 1},
		},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
		ShippingMethod:  "standard",
	})

	require.NoError(t, err)
	assert.Equal(t, 690.0, order.TotalAmount)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)

	// Stock was reserved
	assert.Equal(t, 8, products.products[eggs.ID].Quantity)
	assert.Equal(t, 4, products.products[honey.ID].Quantity)
}

func TestCreateOrderAddsExpressFee(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	user := seedUserWithCart(users)

	order, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 1}},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "online",
		ShippingMethod:  "express",
	})

	require.NoError(t, err)
	assert.Equal(t, 150.0, order.TotalAmount)
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	service, users, products, orders := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	user := seedUserWithCart(users)

	wrongTotal := 75.0
	_, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 1}},
		TotalAmount:     &wrongTotal,
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})

	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, orders.orders)
	// Stock is untouched, the mismatch is caught before reservation
	assert.Equal(t, 10, products.products[eggs.ID].Quantity)
}

func TestCreateOrderAcceptsTotalWithinTolerance(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 99.99, Quantity: 10})
	user := seedUserWithCart(users)

	clientTotal := 99.985
	_, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 1}},
		TotalAmount:     &clientTotal,
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})

	require.NoError(t, err)
}

func TestCreateOrderInsufficientStockReleasesReservations(t *testing.T) {
	service, users, products, orders := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	honey := products.put(&entity.Product{Name: "Raw Honey", Price: 450, Quantity: 1})
	user := seedUserWithCart(users)

	_, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products: []request.OrderItemPayload{
			{ProductID: eggs.ID.Hex(), Quantity: 2},
			{ProductID: honey.ID.Hex(), Quantity: 3},
		},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})

	require.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, orders.orders)
	// Neither product lost stock in the end
	assert.Equal(t, 10, products.products[eggs.ID].Quantity)
	assert.Equal(t, 1, products.products[honey.ID].Quantity)
}

func TestCreateOrderMergesDuplicateLines(t *testing.T) {
	service, users, products, orders := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	user := seedUserWithCart(users)

	order, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products: []request.OrderItemPayload{
			{ProductID: eggs.ID.Hex(), Quantity: 2},
			{ProductID: eggs.ID.Hex(), Quantity: 3},
		},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})

	require.NoError(t, err)
	assert.Len(t, order.Products, 1)
	assert.Equal(t, 5, order.Products[0].Quantity)
	assert.Equal(t, 500.0, order.TotalAmount)
	assert.Len(t, orders.orders, 1)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	service, users, _, _ := newOrderService(t)
	user := seedUserWithCart(users)

	_, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderClearsCart(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	user := seedUserWithCart(users, entity.CartLine{ProductID: eggs.ID, Quantity: 2})

	_, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 2}},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})

	require.NoError(t, err)
	assert.Empty(t, users.users[user.ID].Cart)
}

func TestOrderKeepsPriceSnapshotAfterRepricing(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	user := seedUserWithCart(users)

	order, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 1}},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	// Admin reprices the product afterwards
	products.products[eggs.ID].Price = 999

	orderID, err := utils.ParseObjectID(order.ID)
	require.NoError(t, err)

	fetched, err := service.GetOrder(context.Background(), user.ID, entity.RoleUser, orderID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fetched.Products[0].Price)
	assert.Equal(t, 100.0, fetched.TotalAmount)
}

func TestGetOrderHiddenFromOtherUsers(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	owner := seedUserWithCart(users)
	stranger := users.put(&entity.User{Name: "Noor", Email: "noor@example.com"})

	order, err := service.CreateOrder(context.Background(), owner.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 1}},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	orderID, err := utils.ParseObjectID(order.ID)
	require.NoError(t, err)

	_, err = service.GetOrder(context.Background(), stranger.ID, entity.RoleUser, orderID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Admins can read any order
	_, err = service.GetOrder(context.Background(), stranger.ID, entity.RoleAdmin, orderID)
	assert.NoError(t, err)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	service, users, products, orders := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	user := seedUserWithCart(users)

	created, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 1}},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	orderID, err := utils.ParseObjectID(created.ID)
	require.NoError(t, err)

	// Pending cannot jump straight to Delivered
	_, err = service.UpdateStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Delivered"})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := service.UpdateStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Shipped"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, updated.Status)

	updated, err = service.UpdateStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Delivered"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, updated.Status)

	// Delivered is terminal
	_, err = service.UpdateStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Cancelled"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, entity.OrderStatusDelivered, orders.orders[orderID].Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	service, _, _, _ := newOrderService(t)

	_, err := service.UpdateStatus(context.Background(), primitive.NewObjectID(), &request.UpdateOrderStatusRequest{Status: "Teleported"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelReturnsStock(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	user := seedUserWithCart(users)

	created, err := service.CreateOrder(context.Background(), user.ID, &request.CreateOrderRequest{
		Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 4}},
		ShippingAddress: "42 Green Lane, Springfield",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, products.products[eggs.ID].Quantity)

	orderID, err := utils.ParseObjectID(created.ID)
	require.NoError(t, err)

	_, err = service.UpdateStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Cancelled"})
	require.NoError(t, err)
	assert.Equal(t, 10, products.products[eggs.ID].Quantity)
}

func TestListUserOrdersOnlyOwn(t *testing.T) {
	service, users, products, _ := newOrderService(t)

	eggs := products.put(&entity.Product{Name: "Free Range Eggs", Price: 100, Quantity: 10})
	alice := seedUserWithCart(users)
	bob := users.put(&entity.User{Name: "Bob", Email: "bob@example.com"})

	for _, userID := range []primitive.ObjectID{alice.ID, alice.ID, bob.ID} {
		_, err := service.CreateOrder(context.Background(), userID, &request.CreateOrderRequest{
			Products:        []request.OrderItemPayload{{ProductID: eggs.ID.Hex(), Quantity: 1}},
			ShippingAddress: "42 Green Lane, Springfield",
			PaymentMethod:   "cod",
		})
		require.NoError(t, err)
	}

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	mine, err := service.ListUserOrders(context.Background(), alice.ID, page)
	require.NoError(t, err)
	assert.Len(t, mine.Data, 2)
	assert.EqualValues(t, 2, mine.Pagination.Total)

	all, err := service.ListAllOrders(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, all.Data, 3)
}
