package repository

import (
	"context"
	"fmt"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]*entity.Order, error)
	CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error
}

type orderRepository struct {
	db  database.MongoIface
	log *zap.Logger
}

func NewOrderRepository(db database.MongoIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log,
	}
}

func (or *orderRepository) coll() *mongo.Collection {
	return or.db.Collection(database.CollOrders)
}

func (or *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	_, err := or.coll().InsertOne(ctx, order)
	if err != nil {
		or.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
			zap.String("user_id", order.UserID.Hex()),
		)
		return fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (or *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var order entity.Order
	err := or.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		or.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.Hex()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.Hex(), err)
	}

	return &order, nil
}

// FindByUserID returns the user's orders newest-first
func (or *orderRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]*entity.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "orderedAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := or.coll().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		or.log.Error("Failed to find orders by user",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
		)
		return nil, fmt.Errorf("find orders by user %s: %w", userID.Hex(), err)
	}

	var orders []*entity.Order
	if err := cursor.All(ctx, &orders); err != nil {
		or.log.Error("Failed to decode orders", zap.Error(err))
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	return orders, nil
}

func (or *orderRepository) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := or.coll().CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		or.log.Error("Failed to count user orders",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
		)
		return 0, fmt.Errorf("count orders by user %s: %w", userID.Hex(), err)
	}

	return count, nil
}

func (or *orderRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "orderedAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := or.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		or.log.Error("Failed to get all orders",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all orders limit %d offset %d: %w", limit, offset, err)
	}

	var orders []*entity.Order
	if err := cursor.All(ctx, &orders); err != nil {
		or.log.Error("Failed to decode orders", zap.Error(err))
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	return orders, nil
}

func (or *orderRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := or.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		or.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count all orders: %w", err)
	}

	return count, nil
}

// UpdateStatus writes only the status field; everything else on the order
// stays immutable
func (or *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error {
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := or.coll().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		or.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.Hex()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update order status %s: %w", id.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s not found", id.Hex())
	}

	return nil
}
