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

type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Blog, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Blog, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, blog *entity.Blog) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type blogRepository struct {
	db  database.MongoIface
	log *zap.Logger
}

func NewBlogRepository(db database.MongoIface, log *zap.Logger) BlogRepository {
	return &blogRepository{
		db:  db,
		log: log,
	}
}

func (br *blogRepository) coll() *mongo.Collection {
	return br.db.Collection(database.CollBlogs)
}

func (br *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	_, err := br.coll().InsertOne(ctx, blog)
	if err != nil {
		br.log.Error("Failed to create blog",
			zap.Error(err),
			zap.String("title", blog.Title),
		)
		return fmt.Errorf("create blog %s: %w", blog.Title, err)
	}

	return nil
}

func (br *blogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Blog, error) {
	var blog entity.Blog
	err := br.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		br.log.Error("Failed to find blog by ID",
			zap.Error(err),
			zap.String("blog_id", id.Hex()),
		)
		return nil, fmt.Errorf("find blog by ID %s: %w", id.Hex(), err)
	}

	return &blog, nil
}

func (br *blogRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Blog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := br.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		br.log.Error("Failed to get all blogs",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all blogs limit %d offset %d: %w", limit, offset, err)
	}

	var blogs []*entity.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		br.log.Error("Failed to decode blogs", zap.Error(err))
		return nil, fmt.Errorf("decode blogs: %w", err)
	}

	return blogs, nil
}

func (br *blogRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := br.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		br.log.Error("Failed to count blogs", zap.Error(err))
		return 0, fmt.Errorf("count all blogs: %w", err)
	}

	return count, nil
}

func (br *blogRepository) Update(ctx context.Context, blog *entity.Blog) error {
	update := bson.M{"$set": bson.M{
		"title":     blog.Title,
		"content":   blog.Content,
		"imageURL":  blog.ImageURL,
		"updatedAt": blog.UpdatedAt,
	}}

	result, err := br.coll().UpdateOne(ctx, bson.M{"_id": blog.ID}, update)
	if err != nil {
		br.log.Error("Failed to update blog",
			zap.Error(err),
			zap.String("blog_id", blog.ID.Hex()),
		)
		return fmt.Errorf("update blog %s: %w", blog.ID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("blog %s not found", blog.ID.Hex())
	}

	return nil
}

func (br *blogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := br.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		br.log.Error("Failed to delete blog",
			zap.Error(err),
			zap.String("blog_id", id.Hex()),
		)
		return fmt.Errorf("delete blog %s: %w", id.Hex(), err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("blog %s not found", id.Hex())
	}

	br.log.Info("Blog deleted", zap.String("blog_id", id.Hex()))
	return nil
}
