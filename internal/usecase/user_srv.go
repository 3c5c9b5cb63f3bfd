package usecase

import (
	"context"
	"fmt"
	"time"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/dto/response"
	"naturehatch-backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	UpdateDeliveryInfo(ctx context.Context, userID primitive.ObjectID, req *request.UpdateDeliveryInfoRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID.Hex())
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Profile update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID.Hex())
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != nil {
		// Phone is unique across accounts
		existing, err := s.userRepo.FindByPhone(ctx, *req.Phone)
		if err != nil {
			return nil, fmt.Errorf("check phone: %w", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, fmt.Errorf("%w: phone already registered", ErrConflict)
		}
		user.Phone = req.Phone
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.Hex()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateDeliveryInfo(ctx context.Context, userID primitive.ObjectID, req *request.UpdateDeliveryInfoRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Delivery info validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	info := entity.DeliveryInfo{
		Contact:   req.DeliveryInfo.Contact,
		Country:   req.DeliveryInfo.Country,
		FirstName: req.DeliveryInfo.FirstName,
		LastName:  req.DeliveryInfo.LastName,
		Address:   req.DeliveryInfo.Address,
		Apartment: req.DeliveryInfo.Apartment,
		City:      req.DeliveryInfo.City,
		State:     req.DeliveryInfo.State,
		PinCode:   req.DeliveryInfo.PinCode,
		Phone:     req.DeliveryInfo.Phone,
	}
	if req.DeliveryInfo.SaveInfoForNextTime != nil {
		info.SaveInfoForNextTime = *req.DeliveryInfo.SaveInfoForNextTime
	}

	if err := s.userRepo.UpdateDeliveryInfo(ctx, userID, info); err != nil {
		return nil, fmt.Errorf("update delivery info: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID.Hex())
	}

	s.log.Info("Delivery info updated", zap.String("user_id", userID.Hex()))

	resp := response.UserToResponse(user)
	return &resp, nil
}
