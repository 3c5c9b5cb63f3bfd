package repository

import (
	"naturehatch-backend/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Product ProductRepository
	Order   OrderRepository
	Blog    BlogRepository
}

func NewRepository(db database.MongoIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Product: NewProductRepository(db, log),
		Order:   NewOrderRepository(db, log),
		Blog:    NewBlogRepository(db, log),
	}
}
