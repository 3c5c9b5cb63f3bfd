package response

import (
	"time"

	"naturehatch-backend/internal/data/entity"
)

type AuthResponse struct {
	UserID     string          `json:"user_id"`
	Token      string          `json:"token"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       entity.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
}

type UserResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Phone        *string             `json:"phone,omitempty"`
	Role         entity.UserRole     `json:"role"`
	IsVerified   bool                `json:"is_verified"`
	DeliveryInfo entity.DeliveryInfo `json:"delivery_info"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID.Hex(),
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
		IsVerified:   user.IsVerified,
		DeliveryInfo: user.DeliveryInfo,
		CreatedAt:    user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		UserID:     user.ID.Hex(),
		Token:      token,
		ExpiresAt:  expiresAt,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}
}
