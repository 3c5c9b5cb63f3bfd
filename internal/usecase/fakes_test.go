package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes so service tests run without a live Mongo.

// fakeUserRepo is locked because order confirmation emails read users from
// a goroutine
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*entity.User)}
}

func (f *fakeUserRepo) put(user *entity.User) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.put(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Phone != nil && *user.Phone == phone {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.Hex())
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.Hex())
	}
	user.IsVerified = true
	return nil
}

func (f *fakeUserRepo) SetResetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.Hex())
	}
	user.ResetOTP = otp
	user.ResetOTPExpires = &expires
	return nil
}

func (f *fakeUserRepo) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.Hex())
	}
	user.PasswordHash = passwordHash
	user.ResetOTP = ""
	user.ResetOTPExpires = nil
	return nil
}

func (f *fakeUserRepo) AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID.Hex())
	}
	for i, line := range user.Cart {
		if line.ProductID == productID {
			user.Cart[i].Quantity += quantity
			return nil
		}
	}
	user.Cart = append(user.Cart, entity.CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeUserRepo) SetCartLineQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID.Hex())
	}
	for i, line := range user.Cart {
		if line.ProductID == productID {
			user.Cart[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeUserRepo) PullCartLine(ctx context.Context, userID, productID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID.Hex())
	}
	kept := user.Cart[:0]
	for _, line := range user.Cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	user.Cart = kept
	return nil
}

func (f *fakeUserRepo) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID.Hex())
	}
	user.Cart = []entity.CartLine{}
	return nil
}

func (f *fakeUserRepo) UpdateDeliveryInfo(ctx context.Context, userID primitive.ObjectID, info entity.DeliveryInfo) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID.Hex())
	}
	user.DeliveryInfo = info
	return nil
}

type fakeProductRepo struct {
	products map[primitive.ObjectID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*entity.Product)}
}

func (f *fakeProductRepo) put(product *entity.Product) *entity.Product {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	f.products[product.ID] = product
	return product
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.put(product)
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	// Return a detached copy, like the real repository decoding a document,
	// so callers mutating the result don't alias the stored product.
	copied := *product
	copied.Reviews = append([]entity.Review(nil), product.Reviews...)
	return &copied, nil
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Product, error) {
	var result []*entity.Product
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var result []*entity.Product
	for _, product := range f.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		result = append(result, product)
	}
	return result, nil
}

func (f *fakeProductRepo) CountAll(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	products, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(products)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return fmt.Errorf("product %s not found", product.ID.Hex())
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("product %s not found", id.Hex())
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) ReserveStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	product, ok := f.products[id]
	if !ok || product.Quantity < quantity {
		return false, nil
	}
	product.Quantity -= quantity
	return true, nil
}

func (f *fakeProductRepo) ReleaseStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	if product, ok := f.products[id]; ok {
		product.Quantity += quantity
	}
	return nil
}

func (f *fakeProductRepo) AddReview(ctx context.Context, id primitive.ObjectID, review entity.Review, newRating float64) error {
	product, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product %s not found", id.Hex())
	}
	product.Reviews = append(product.Reviews, review)
	product.Rating = newRating
	return nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*entity.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]*entity.Order, error) {
	var result []*entity.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	orders, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(orders)), nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	var result []*entity.Order
	for _, order := range f.orders {
		result = append(result, order)
	}
	return result, nil
}

func (f *fakeOrderRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id.Hex())
	}
	order.Status = status
	return nil
}

// fakeMailer records outbound mail instead of sending it
type fakeMailer struct {
	mu            sync.Mutex
	verifications []string
	otps          []string
	confirmations []string
}

func (m *fakeMailer) SendVerificationEmail(to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, to)
	return nil
}

func (m *fakeMailer) SendPasswordResetOTP(to, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps = append(m.otps, otp)
	return nil
}

func (m *fakeMailer) SendOrderConfirmation(to, orderNumber string, total float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, orderNumber)
	return nil
}

// fakeStorage pretends to store uploads and remembers removals
type fakeStorage struct {
	saved   int
	removed []string
}

func (s *fakeStorage) Save(file io.Reader, originalName string) (string, error) {
	s.saved++
	return fmt.Sprintf("/uploads/fake-%d", s.saved), nil
}

func (s *fakeStorage) Remove(urlPath string) error {
	s.removed = append(s.removed, urlPath)
	return nil
}

func newTestRepo() (*repository.Repository, *fakeUserRepo, *fakeProductRepo, *fakeOrderRepo) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	repo := &repository.Repository{
		User:    users,
		Product: products,
		Order:   orders,
	}
	return repo, users, products, orders
}
