package usecase

import (
	"context"
	"fmt"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/dto/response"
	"naturehatch-backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, userID primitive.ObjectID) (*response.CartResponse, error)
	AddToCart(ctx context.Context, userID primitive.ObjectID, req *request.AddToCartRequest) (*response.CartResponse, error)
	UpdateCart(ctx context.Context, userID primitive.ObjectID, req *request.UpdateCartRequest) (*response.CartResponse, error)
	ClearItem(ctx context.Context, userID primitive.ObjectID, req *request.ClearItemRequest) (*response.CartResponse, error)
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*response.CartResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID.Hex())
	}

	return s.populateCart(ctx, user.Cart)
}

func (s *cartService) AddToCart(ctx context.Context, userID primitive.ObjectID, req *request.AddToCartRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add to cart validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	productID, err := utils.ParseObjectID(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, req.ProductID)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	// Existing lines for the same product are merged, not duplicated
	if err := s.repo.User.AddCartLine(ctx, userID, productID, quantity); err != nil {
		return nil, fmt.Errorf("add cart line: %w", err)
	}

	s.log.Info("Product added to cart",
		zap.String("user_id", userID.Hex()),
		zap.String("product_id", productID.Hex()),
		zap.Int("quantity", quantity))

	return s.reloadCart(ctx, userID)
}

func (s *cartService) UpdateCart(ctx context.Context, userID primitive.ObjectID, req *request.UpdateCartRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update cart validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	productID, err := utils.ParseObjectID(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	if err := s.repo.User.SetCartLineQuantity(ctx, userID, productID, req.Quantity); err != nil {
		return nil, fmt.Errorf("set cart quantity: %w", err)
	}

	s.log.Info("Cart line updated",
		zap.String("user_id", userID.Hex()),
		zap.String("product_id", productID.Hex()),
		zap.Int("quantity", req.Quantity))

	return s.reloadCart(ctx, userID)
}

// ClearItem removes a single line; removing a product that is not in the
// cart is a no-op, not an error
func (s *cartService) ClearItem(ctx context.Context, userID primitive.ObjectID, req *request.ClearItemRequest) (*response.CartResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	productID, err := utils.ParseObjectID(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	if err := s.repo.User.PullCartLine(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("pull cart line: %w", err)
	}

	s.log.Info("Cart line removed",
		zap.String("user_id", userID.Hex()),
		zap.String("product_id", productID.Hex()))

	return s.reloadCart(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.repo.User.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.log.Info("Cart cleared", zap.String("user_id", userID.Hex()))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *cartService) reloadCart(ctx context.Context, userID primitive.ObjectID) (*response.CartResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID.Hex())
	}

	return s.populateCart(ctx, user.Cart)
}

func (s *cartService) populateCart(ctx context.Context, lines []entity.CartLine) (*response.CartResponse, error) {
	ids := make([]primitive.ObjectID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.repo.Product.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("populate cart: %w", err)
	}

	byID := make(map[primitive.ObjectID]*entity.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	resp := response.CartToResponse(lines, byID)
	return &resp, nil
}
