package utils

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
	TokenKey  contextKey = "token"
)

func GetUserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return primitive.NilObjectID, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetUserContext(ctx context.Context, userID primitive.ObjectID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.Hex())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetTokenFromContext returns the raw bearer token attached by auth middleware
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
