package usecase

import (
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/pkg/mailer"
	"naturehatch-backend/pkg/storage"
	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Cart    CartService
	Order   OrderService
	Product ProductService
	Blog    BlogService
}

func NewService(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, store storage.Storage, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, mail, log),
		User:    NewUserService(repo.User, log),
		Cart:    NewCartService(repo, log),
		Order:   NewOrderService(repo, config, mail, log),
		Product: NewProductService(repo, store, log),
		Blog:    NewBlogService(repo.Blog, store, log),
	}
}
