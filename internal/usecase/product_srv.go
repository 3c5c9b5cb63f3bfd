package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/dto/response"
	"naturehatch-backend/pkg/storage"
	"naturehatch-backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductListQuery carries the list filters parsed from the URL
type ProductListQuery struct {
	Search   string
	Category string
	SortBy   string
	SortDesc bool
	Page     request.PaginatedRequest
}

type ProductService interface {
	ListProducts(ctx context.Context, query ProductListQuery) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*response.ProductResponse, error)
	CreateProduct(ctx context.Context, req *request.CreateProductRequest, image io.Reader, imageName string) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, req *request.UpdateProductRequest, image io.Reader, imageName string) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	AddReview(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, req *request.AddReviewRequest) (*response.ProductResponse, error)
}

type productService struct {
	repo  *repository.Repository
	store storage.Storage
	log   *zap.Logger
}

func NewProductService(repo *repository.Repository, store storage.Storage, log *zap.Logger) ProductService {
	return &productService{
		repo:  repo,
		store: store,
		log:   log.With(zap.String("service", "product")),
	}
}

func (s *productService) ListProducts(ctx context.Context, query ProductListQuery) (*response.PaginatedResponse[response.ProductResponse], error) {
	filter := repository.ProductFilter{
		Search:   query.Search,
		Category: query.Category,
		SortBy:   query.SortBy,
		SortDesc: query.SortDesc,
	}

	products, err := s.repo.Product.FindAll(ctx, filter, query.Page.Limit(), query.Page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := s.repo.Product.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	items := make([]response.ProductResponse, len(products))
	for i, product := range products {
		items[i] = response.ProductToListResponse(product)
	}

	return response.NewPaginatedResponse(items, query.Page.Page, query.Page.Limit(), total), nil
}

func (s *productService) GetProduct(ctx context.Context, id primitive.ObjectID) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *request.CreateProductRequest, image io.Reader, imageName string) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	imageURL := ""
	if image != nil {
		url, err := s.store.Save(image, imageName)
		if err != nil {
			return nil, fmt.Errorf("save product image: %w", err)
		}
		imageURL = url
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		ImageURL:    imageURL,
		Reviews:     []entity.Review{},
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		// The document never landed, so the stored image is orphaned
		if imageURL != "" {
			s.store.Remove(imageURL)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("name", product.Name),
		zap.Float64("price", product.Price))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req *request.UpdateProductRequest, image io.Reader, imageName string) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Category != "" {
		product.Category = req.Category
	}

	oldImage := ""
	if image != nil {
		url, err := s.store.Save(image, imageName)
		if err != nil {
			return nil, fmt.Errorf("save product image: %w", err)
		}
		oldImage = product.ImageURL
		product.ImageURL = url
	}

	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if oldImage != "" {
		s.store.Remove(oldImage)
	}

	s.log.Info("Product updated", zap.String("product_id", id.Hex()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if product.ImageURL != "" {
		s.store.Remove(product.ImageURL)
	}

	return nil
}

func (s *productService) AddReview(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, req *request.AddReviewRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID.Hex())
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}

	for _, existing := range product.Reviews {
		if existing.UserID == userID {
			return nil, fmt.Errorf("%w: product already reviewed", ErrConflict)
		}
	}

	review := entity.Review{
		UserID:    userID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	// Aggregate rating over all reviews including the new one
	sum := float64(req.Rating)
	for _, existing := range product.Reviews {
		sum += float64(existing.Rating)
	}
	newRating := sum / float64(len(product.Reviews)+1)

	if err := s.repo.Product.AddReview(ctx, id, review, newRating); err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}

	s.log.Info("Review added",
		zap.String("product_id", id.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.Int("rating", req.Rating))

	product.Reviews = append(product.Reviews, review)
	product.Rating = newRating

	resp := response.ProductToResponse(product)
	return &resp, nil
}
