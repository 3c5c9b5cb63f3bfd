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

type BlogService interface {
	ListBlogs(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BlogResponse], error)
	GetBlog(ctx context.Context, id primitive.ObjectID) (*response.BlogResponse, error)
	CreateBlog(ctx context.Context, req *request.CreateBlogRequest, image io.Reader, imageName string) (*response.BlogResponse, error)
	UpdateBlog(ctx context.Context, id primitive.ObjectID, req *request.UpdateBlogRequest, image io.Reader, imageName string) (*response.BlogResponse, error)
	DeleteBlog(ctx context.Context, id primitive.ObjectID) error
}

type blogService struct {
	blogRepo repository.BlogRepository
	store    storage.Storage
	log      *zap.Logger
}

func NewBlogService(blogRepo repository.BlogRepository, store storage.Storage, log *zap.Logger) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		store:    store,
		log:      log.With(zap.String("service", "blog")),
	}
}

func (s *blogService) ListBlogs(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BlogResponse], error) {
	blogs, err := s.blogRepo.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	total, err := s.blogRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}

	items := make([]response.BlogResponse, len(blogs))
	for i, blog := range blogs {
		items[i] = response.BlogToResponse(blog)
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *blogService) GetBlog(ctx context.Context, id primitive.ObjectID) (*response.BlogResponse, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find blog: %w", err)
	}
	if blog == nil {
		return nil, fmt.Errorf("%w: blog %s", ErrNotFound, id.Hex())
	}

	resp := response.BlogToResponse(blog)
	return &resp, nil
}

func (s *blogService) CreateBlog(ctx context.Context, req *request.CreateBlogRequest, image io.Reader, imageName string) (*response.BlogResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create blog validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	imageURL := ""
	if image != nil {
		url, err := s.store.Save(image, imageName)
		if err != nil {
			return nil, fmt.Errorf("save blog image: %w", err)
		}
		imageURL = url
	}

	now := time.Now()
	blog := &entity.Blog{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: imageURL,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		if imageURL != "" {
			s.store.Remove(imageURL)
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}

	s.log.Info("Blog created", zap.String("title", blog.Title))

	resp := response.BlogToResponse(blog)
	return &resp, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, id primitive.ObjectID, req *request.UpdateBlogRequest, image io.Reader, imageName string) (*response.BlogResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update blog validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find blog: %w", err)
	}
	if blog == nil {
		return nil, fmt.Errorf("%w: blog %s", ErrNotFound, id.Hex())
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Content != "" {
		blog.Content = req.Content
	}

	oldImage := ""
	if image != nil {
		url, err := s.store.Save(image, imageName)
		if err != nil {
			return nil, fmt.Errorf("save blog image: %w", err)
		}
		oldImage = blog.ImageURL
		blog.ImageURL = url
	}

	blog.UpdatedAt = time.Now()

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	if oldImage != "" {
		s.store.Remove(oldImage)
	}

	s.log.Info("Blog updated", zap.String("blog_id", id.Hex()))

	resp := response.BlogToResponse(blog)
	return &resp, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find blog: %w", err)
	}
	if blog == nil {
		return fmt.Errorf("%w: blog %s", ErrNotFound, id.Hex())
	}

	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	if blog.ImageURL != "" {
		s.store.Remove(blog.ImageURL)
	}

	return nil
}
