package usecase

import (
	"context"
	"strings"
	"testing"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newProductService(t *testing.T) (ProductService, *fakeUserRepo, *fakeProductRepo, *fakeStorage) {
	t.Helper()

	repo, users, products, _ := newTestRepo()
	store := &fakeStorage{}
	return NewProductService(repo, store, zap.NewNop()), users, products, store
}

func TestCreateProductStoresImage(t *testing.T) {
	service, _, products, store := newProductService(t)

	resp, err := service.CreateProduct(context.Background(), &request.CreateProductRequest{
		Name:        "Raw Honey",
		Description: "Unfiltered honey from our own hives",
		Price:       450,
		Quantity:    5,
		Category:    "honey",
	}, strings.NewReader("fake image bytes"), "honey.jpg")

	require.NoError(t, err)
	assert.Equal(t, 1, store.saved)
	assert.NotEmpty(t, resp.ImageURL)
	assert.Len(t, products.products, 1)
}

func TestCreateProductValidation(t *testing.T) {
	service, _, _, _ := newProductService(t)

	_, err := service.CreateProduct(context.Background(), &request.CreateProductRequest{
		Name:        "Raw Honey",
		Description: "Unfiltered honey",
		Price:       -5,
		Category:    "honey",
	}, nil, "")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProductSwapsImage(t *testing.T) {
	service, _, products, store := newProductService(t)

	honey := products.put(&entity.Product{
		Name:     "Raw Honey",
		Price:    450,
		Quantity: 5,
		ImageURL: "/uploads/old-image.jpg",
	})

	newPrice := 500.0
	resp, err := service.UpdateProduct(context.Background(), honey.ID, &request.UpdateProductRequest{
		Price: &newPrice,
	}, strings.NewReader("new image"), "honey-v2.jpg")

	require.NoError(t, err)
	assert.Equal(t, 500.0, resp.Price)
	// The replaced image was cleaned up
	assert.Contains(t, store.removed, "/uploads/old-image.jpg")
}

func TestUpdateProductPartial(t *testing.T) {
	service, _, products, _ := newProductService(t)

	honey := products.put(&entity.Product{
		Name:        "Raw Honey",
		Description: "Unfiltered",
		Price:       450,
		Quantity:    5,
		Category:    "honey",
	})

	resp, err := service.UpdateProduct(context.Background(), honey.ID, &request.UpdateProductRequest{
		Name: "Wild Raw Honey",
	}, nil, "")

	require.NoError(t, err)
	assert.Equal(t, "Wild Raw Honey", resp.Name)
	// Untouched fields survive
	assert.Equal(t, 450.0, resp.Price)
	assert.Equal(t, "honey", resp.Category)
}

func TestDeleteProductRemovesImage(t *testing.T) {
	service, _, products, store := newProductService(t)

	honey := products.put(&entity.Product{
		Name:     "Raw Honey",
		ImageURL: "/uploads/honey.jpg",
	})

	require.NoError(t, service.DeleteProduct(context.Background(), honey.ID))
	assert.Empty(t, products.products)
	assert.Contains(t, store.removed, "/uploads/honey.jpg")
}

func TestDeleteProductUnknown(t *testing.T) {
	service, _, _, _ := newProductService(t)

	err := service.DeleteProduct(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddReviewAggregatesRating(t *testing.T) {
	service, users, products, _ := newProductService(t)

	honey := products.put(&entity.Product{Name: "Raw Honey", Price: 450})
	first := users.put(&entity.User{Name: "Asha", Email: "asha@example.com"})
	second := users.put(&entity.User{Name: "Noor", Email: "noor@example.com"})

	resp, err := service.AddReview(context.Background(), honey.ID, first.ID, &request.AddReviewRequest{
		Rating:  5,
		Comment: "Best honey around",
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.Rating)

	resp, err = service.AddReview(context.Background(), honey.ID, second.ID, &request.AddReviewRequest{
		Rating: 2,
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, resp.Rating, 0.001)
	assert.Len(t, resp.Reviews, 2)
	assert.Equal(t, "Asha", resp.Reviews[0].Name)
}

func TestAddReviewOncePerUser(t *testing.T) {
	service, users, products, _ := newProductService(t)

	honey := products.put(&entity.Product{Name: "Raw Honey", Price: 450})
	user := users.put(&entity.User{Name: "Asha", Email: "asha@example.com"})

	_, err := service.AddReview(context.Background(), honey.ID, user.ID, &request.AddReviewRequest{Rating: 4})
	require.NoError(t, err)

	_, err = service.AddReview(context.Background(), honey.ID, user.ID, &request.AddReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAddReviewRatingBounds(t *testing.T) {
	service, users, products, _ := newProductService(t)

	honey := products.put(&entity.Product{Name: "Raw Honey", Price: 450})
	user := users.put(&entity.User{Name: "Asha", Email: "asha@example.com"})

	_, err := service.AddReview(context.Background(), honey.ID, user.ID, &request.AddReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListProductsFiltersByCategory(t *testing.T) {
	service, _, products, _ := newProductService(t)

	products.put(&entity.Product{Name: "Raw Honey", Category: "honey"})
	products.put(&entity.Product{Name: "Free Range Eggs", Category: "eggs"})

	resp, err := service.ListProducts(context.Background(), ProductListQuery{
		Category: "honey",
		Page:     request.PaginatedRequest{Page: 1, PerPage: 10},
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Raw Honey", resp.Data[0].Name)
	assert.EqualValues(t, 1, resp.Pagination.Total)
}
