package repository

import (
	"context"
	"fmt"
	"time"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ProductFilter narrows FindAll; zero values mean no filtering
type ProductFilter struct {
	Search   string // case-insensitive name substring
	Category string
	SortDesc bool // price sort direction, ascending when false
	SortBy   string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context, filter ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Stock reservation
	ReserveStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
	ReleaseStock(ctx context.Context, id primitive.ObjectID, quantity int) error

	AddReview(ctx context.Context, id primitive.ObjectID, review entity.Review, newRating float64) error
}

type productRepository struct {
	db  database.MongoIface
	log *zap.Logger
}

func NewProductRepository(db database.MongoIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log,
	}
}

func (pr *productRepository) coll() *mongo.Collection {
	return pr.db.Collection(database.CollProducts)
}

func buildProductQuery(filter ProductFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	return query
}

func (pr *productRepository) Create(ctx context.Context, product *entity.Product) error {
	_, err := pr.coll().InsertOne(ctx, product)
	if err != nil {
		pr.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (pr *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var product entity.Product
	err := pr.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.Hex()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.Hex(), err)
	}

	return &product, nil
}

// FindByIDs fetches several products at once for cart/order population
func (pr *productRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := pr.coll().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		pr.log.Error("Failed to find products by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find products by IDs: %w", err)
	}

	var products []*entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		pr.log.Error("Failed to decode products", zap.Error(err))
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return products, nil
}

func (pr *productRepository) FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error) {
	query := buildProductQuery(filter)

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if filter.SortBy == "price" {
		direction := 1
		if filter.SortDesc {
			direction = -1
		}
		sort = bson.D{{Key: "price", Value: direction}}
	}

	opts := options.Find().
		SetSort(sort).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := pr.coll().Find(ctx, query, opts)
	if err != nil {
		pr.log.Error("Failed to get all products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all products limit %d offset %d: %w", limit, offset, err)
	}

	var products []*entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		pr.log.Error("Failed to decode products", zap.Error(err))
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return products, nil
}

func (pr *productRepository) CountAll(ctx context.Context, filter ProductFilter) (int64, error) {
	count, err := pr.coll().CountDocuments(ctx, buildProductQuery(filter))
	if err != nil {
		pr.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count all products: %w", err)
	}

	return count, nil
}

func (pr *productRepository) Update(ctx context.Context, product *entity.Product) error {
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"category":    product.Category,
		"imageURL":    product.ImageURL,
		"updatedAt":   product.UpdatedAt,
	}}

	result, err := pr.coll().UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		pr.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.Hex()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("product %s not found", product.ID.Hex())
	}

	return nil
}

// Delete removes the product document for good (hard delete)
func (pr *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := pr.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		pr.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.Hex()),
		)
		return fmt.Errorf("delete product %s: %w", id.Hex(), err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("product %s not found", id.Hex())
	}

	pr.log.Info("Product deleted", zap.String("product_id", id.Hex()))
	return nil
}

// ReserveStock decrements stock only when enough is available; the filter
// and $inc run as one document write, so concurrent checkouts cannot
// oversell. Returns false when stock was insufficient.
func (pr *productRepository) ReserveStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": quantity}}
	update := bson.M{"$inc": bson.M{"quantity": -quantity}}

	result, err := pr.coll().UpdateOne(ctx, filter, update)
	if err != nil {
		pr.log.Error("Failed to reserve stock",
			zap.Error(err),
			zap.String("product_id", id.Hex()),
			zap.Int("quantity", quantity),
		)
		return false, fmt.Errorf("reserve stock %s: %w", id.Hex(), err)
	}

	return result.ModifiedCount > 0, nil
}

// ReleaseStock gives reserved units back after a failed checkout
func (pr *productRepository) ReleaseStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	update := bson.M{"$inc": bson.M{"quantity": quantity}}

	_, err := pr.coll().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		pr.log.Error("Failed to release stock",
			zap.Error(err),
			zap.String("product_id", id.Hex()),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("release stock %s: %w", id.Hex(), err)
	}

	return nil
}

func (pr *productRepository) AddReview(ctx context.Context, id primitive.ObjectID, review entity.Review, newRating float64) error {
	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"rating": newRating, "updatedAt": time.Now()},
	}

	result, err := pr.coll().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		pr.log.Error("Failed to add review",
			zap.Error(err),
			zap.String("product_id", id.Hex()),
		)
		return fmt.Errorf("add review %s: %w", id.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("product %s not found", id.Hex())
	}

	return nil
}
