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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetVerified(ctx context.Context, id primitive.ObjectID) error
	SetResetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	// Cart sub-document operations
	AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	SetCartLineQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	PullCartLine(ctx context.Context, userID, productID primitive.ObjectID) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error

	UpdateDeliveryInfo(ctx context.Context, userID primitive.ObjectID, info entity.DeliveryInfo) error
}

type userRepository struct {
	db  database.MongoIface
	log *zap.Logger
}

func NewUserRepository(db database.MongoIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

func (ur *userRepository) coll() *mongo.Collection {
	return ur.db.Collection(database.CollUsers)
}

// Create inserts a new user document
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := ur.coll().InsertOne(ctx, user)
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	err := ur.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.Hex(), err)
	}

	return &user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := ur.coll().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return &user, nil
}

func (ur *userRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var user entity.User
	err := ur.coll().FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by phone",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return nil, fmt.Errorf("find user by phone %s: %w", phone, err)
	}

	return &user, nil
}

// Update replaces the mutable profile fields
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"email":      user.Email,
		"phone":      user.Phone,
		"password":   user.PasswordHash,
		"isVerified": user.IsVerified,
		"role":       user.Role,
		"updatedAt":  user.UpdatedAt,
	}}

	result, err := ur.coll().UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.Hex()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", user.ID.Hex())
	}

	return nil
}

func (ur *userRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isVerified": true, "updatedAt": time.Now()}}

	result, err := ur.coll().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		ur.log.Error("Failed to mark user verified",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return fmt.Errorf("set verified %s: %w", id.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", id.Hex())
	}

	return nil
}

func (ur *userRepository) SetResetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"resetOtp":        otp,
		"resetOtpExpires": expires,
		"updatedAt":       time.Now(),
	}}

	_, err := ur.coll().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		ur.log.Error("Failed to set reset OTP",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return fmt.Errorf("set reset OTP %s: %w", id.Hex(), err)
	}

	return nil
}

// ResetPassword swaps the password hash and clears the OTP in one write
func (ur *userRepository) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now()},
		"$unset": bson.M{"resetOtp": "", "resetOtpExpires": ""},
	}

	result, err := ur.coll().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		ur.log.Error("Failed to reset password",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return fmt.Errorf("reset password %s: %w", id.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", id.Hex())
	}

	return nil
}

// AddCartLine merges the quantity into an existing line for the same
// product, or pushes a new line when none exists
func (ur *userRepository) AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	// Try to bump the existing line first
	filter := bson.M{"_id": userID, "cart.productId": productID}
	update := bson.M{"$inc": bson.M{"cart.$.quantity": quantity}}

	result, err := ur.coll().UpdateOne(ctx, filter, update)
	if err != nil {
		ur.log.Error("Failed to increment cart line",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("product_id", productID.Hex()),
		)
		return fmt.Errorf("add cart line %s: %w", productID.Hex(), err)
	}

	if result.MatchedCount > 0 {
		return nil
	}

	// No existing line, push a new one
	push := bson.M{"$push": bson.M{"cart": entity.CartLine{ProductID: productID, Quantity: quantity}}}

	pushResult, err := ur.coll().UpdateOne(ctx, bson.M{"_id": userID}, push)
	if err != nil {
		ur.log.Error("Failed to push cart line",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("product_id", productID.Hex()),
		)
		return fmt.Errorf("add cart line %s: %w", productID.Hex(), err)
	}

	if pushResult.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID.Hex())
	}

	return nil
}

// SetCartLineQuantity overwrites the quantity on every line matching the
// product, so repeating the call is idempotent
func (ur *userRepository) SetCartLineQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	update := bson.M{"$set": bson.M{"cart.$[elem].quantity": quantity}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem.productId": productID}},
	})

	result, err := ur.coll().UpdateOne(ctx, bson.M{"_id": userID}, update, opts)
	if err != nil {
		ur.log.Error("Failed to set cart quantity",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("product_id", productID.Hex()),
		)
		return fmt.Errorf("set cart quantity %s: %w", productID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID.Hex())
	}

	return nil
}

// PullCartLine removes all lines matching the product; absent lines are a no-op
func (ur *userRepository) PullCartLine(ctx context.Context, userID, productID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"cart": bson.M{"productId": productID}}}

	result, err := ur.coll().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		ur.log.Error("Failed to pull cart line",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("product_id", productID.Hex()),
		)
		return fmt.Errorf("pull cart line %s: %w", productID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID.Hex())
	}

	return nil
}

func (ur *userRepository) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"cart": []entity.CartLine{}}}

	result, err := ur.coll().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		ur.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
		)
		return fmt.Errorf("clear cart %s: %w", userID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID.Hex())
	}

	return nil
}

func (ur *userRepository) UpdateDeliveryInfo(ctx context.Context, userID primitive.ObjectID, info entity.DeliveryInfo) error {
	update := bson.M{"$set": bson.M{"deliveryInfo": info, "updatedAt": time.Now()}}

	result, err := ur.coll().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		ur.log.Error("Failed to update delivery info",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
		)
		return fmt.Errorf("update delivery info %s: %w", userID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID.Hex())
	}

	return nil
}
