package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/dto/response"
	"naturehatch-backend/pkg/mailer"
	"naturehatch-backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// totalTolerance absorbs float rounding between the client's displayed
// total and the server's recomputation
const totalTolerance = 0.01

type OrderService interface {
	CreateOrder(ctx context.Context, userID primitive.ObjectID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	GetOrder(ctx context.Context, userID primitive.ObjectID, role entity.UserRole, orderID primitive.ObjectID) (*response.OrderResponse, error)
	ListUserOrders(ctx context.Context, userID primitive.ObjectID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	ListAllOrders(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
}

type orderService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewOrderService(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID primitive.ObjectID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Merge duplicate lines so reservation happens once per product
	merged, err := mergeOrderLines(req.Products)
	if err != nil {
		return nil, err
	}

	// 3. Load every product referenced by the order
	ids := make([]primitive.ObjectID, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}

	products, err := s.repo.Product.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	byID := make(map[primitive.ObjectID]*entity.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	for id := range merged {
		if byID[id] == nil {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
		}
	}

	// 4. Recompute the total on the server side; the client amount is
	// only a hint and must agree within the tolerance
	items := make([]entity.OrderItem, 0, len(merged))
	total := 0.0
	for id, quantity := range merged {
		product := byID[id]
		items = append(items, entity.OrderItem{
			ProductID: id,
			Quantity:  quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(quantity)
	}

	shippingMethod := entity.ShippingMethod(req.ShippingMethod)
	if shippingMethod == "" {
		shippingMethod = entity.ShippingMethodStandard
	}
	if shippingMethod == entity.ShippingMethodExpress {
		total += s.config.Shipping.ExpressFee
	}

	if req.TotalAmount != nil && math.Abs(*req.TotalAmount-total) > totalTolerance {
		s.log.Warn("Order total mismatch",
			zap.Float64("client_total", *req.TotalAmount),
			zap.Float64("server_total", total),
			zap.String("user_id", userID.Hex()))
		return nil, fmt.Errorf("%w: total amount mismatch", ErrValidation)
	}

	// 5. Reserve stock product by product; on any failure, put back what
	// was already taken
	reserved := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		ok, err := s.repo.Product.ReserveStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.releaseReserved(ctx, reserved)
			return nil, fmt.Errorf("reserve stock: %w", err)
		}
		if !ok {
			s.releaseReserved(ctx, reserved)
			return nil, fmt.Errorf("%w: insufficient stock for %s", ErrConflict, byID[item.ProductID].Name)
		}
		reserved = append(reserved, item)
	}

	// 6. Persist the order with snapshot prices
	order := &entity.Order{
		OrderNumber:     utils.GenerateOrderNumber(),
		UserID:          userID,
		Products:        items,
		TotalAmount:     total,
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
		ShippingMethod:  shippingMethod,
		ShippingAddress: req.ShippingAddress,
		Status:          entity.OrderStatusPending,
		OrderedAt:       time.Now(),
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.releaseReserved(ctx, reserved)
		return nil, fmt.Errorf("create order: %w", err)
	}

	// 7. Empty the cart and notify, both best-effort: the order already
	// exists and must not be rolled back over either
	if err := s.repo.User.ClearCart(ctx, userID); err != nil {
		s.log.Warn("Failed to clear cart after order",
			zap.Error(err), zap.String("user_id", userID.Hex()))
	}

	go s.sendConfirmation(userID, order.OrderNumber, order.TotalAmount)

	s.log.Info("Order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.Hex()),
		zap.Float64("total", total))

	resp := response.OrderToResponse(order, byID)
	return &resp, nil
}

// GetOrder returns an order; non-admin callers only see their own
func (s *orderService) GetOrder(ctx context.Context, userID primitive.ObjectID, role entity.UserRole, orderID primitive.ObjectID) (*response.OrderResponse, error) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID.Hex())
	}

	if role != entity.RoleAdmin && order.UserID != userID {
		// Hide the order's existence from other users
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID.Hex())
	}

	resp, err := s.populateOrders(ctx, []*entity.Order{order})
	if err != nil {
		return nil, err
	}

	return &resp[0], nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID primitive.ObjectID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}

	total, err := s.repo.Order.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user orders: %w", err)
	}

	items, err := s.populateOrders(ctx, orders)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *orderService) ListAllOrders(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	items, err := s.populateOrders(ctx, orders)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	next, known := entity.ParseOrderStatus(req.Status)
	if !known {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID.Hex())
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.Status, next)
	}

	if err := s.repo.Order.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	// Cancelling puts the reserved units back on the shelf
	if next == entity.OrderStatusCancelled {
		for _, item := range order.Products {
			if err := s.repo.Product.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.log.Warn("Failed to release stock on cancel",
					zap.Error(err),
					zap.String("order_id", orderID.Hex()),
					zap.String("product_id", item.ProductID.Hex()))
			}
		}
	}

	s.log.Info("Order status updated",
		zap.String("order_id", orderID.Hex()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))

	order.Status = next
	items, err := s.populateOrders(ctx, []*entity.Order{order})
	if err != nil {
		return nil, err
	}

	return &items[0], nil
}

// ==================== HELPER METHODS ====================

func mergeOrderLines(lines []request.OrderItemPayload) (map[primitive.ObjectID]int, error) {
	merged := make(map[primitive.ObjectID]int, len(lines))
	for _, line := range lines {
		id, err := utils.ParseObjectID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product id %q", ErrValidation, line.ProductID)
		}
		merged[id] += line.Quantity
	}
	return merged, nil
}

func (s *orderService) releaseReserved(ctx context.Context, reserved []entity.OrderItem) {
	for _, item := range reserved {
		if err := s.repo.Product.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.Error("Failed to release reserved stock",
				zap.Error(err),
				zap.String("product_id", item.ProductID.Hex()),
				zap.Int("quantity", item.Quantity))
		}
	}
}

// populateOrders resolves product names across a batch of orders with one
// catalog query
func (s *orderService) populateOrders(ctx context.Context, orders []*entity.Order) ([]response.OrderResponse, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, order := range orders {
		for _, item := range order.Products {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	products, err := s.repo.Product.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("populate orders: %w", err)
	}

	byID := make(map[primitive.ObjectID]*entity.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	items := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		items[i] = response.OrderToResponse(order, byID)
	}

	return items, nil
}

func (s *orderService) sendConfirmation(userID primitive.ObjectID, orderNumber string, total float64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Warn("Could not load user for order confirmation",
			zap.Error(err), zap.String("user_id", userID.Hex()))
		return
	}

	if err := s.mail.SendOrderConfirmation(user.Email, orderNumber, total); err != nil {
		s.log.Warn("Failed to send order confirmation",
			zap.Error(err), zap.String("order_number", orderNumber))
	}
}
