package usecase

import (
	"context"
	"fmt"
	"time"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/dto/response"
	"naturehatch-backend/pkg/mailer"
	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Sign-up validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Email must be unique
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	// 3. Phone must be unique when given
	if req.Phone != nil && *req.Phone != "" {
		existingUser, err = s.repo.User.FindByPhone(ctx, *req.Phone)
		if err != nil {
			return nil, fmt.Errorf("check phone: %w", err)
		}
		if existingUser != nil {
			return nil, fmt.Errorf("%w: phone already registered", ErrConflict)
		}
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("process password: %w", err)
	}

	// 5. Create user document, unverified until the email link is redeemed
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		IsVerified:   false,
		Role:         entity.RoleUser,
		Cart:         []entity.CartLine{},
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	created, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil || created == nil {
		return nil, fmt.Errorf("load created account: %w", err)
	}

	// 6. Send verification email best-effort; the account is already
	// persisted, so a mail outage must not fail the sign-up
	go s.sendVerificationEmail(created.Email)

	// 7. Issue auth token right away
	token, expiresAt, err := s.issueToken(created)
	if err != nil {
		s.log.Error("Failed to issue token after sign-up",
			zap.Error(err), zap.String("user_id", created.ID.Hex()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User signed up",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email))

	resp := response.AuthToResponse(created, token, expiresAt)
	return &resp, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is missing", ErrValidation)
	}

	claims, err := utils.ParseEmailToken(token, s.config.JWT.Secret)
	if err != nil {
		s.log.Warn("Invalid verification token", zap.Error(err))
		return fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}

	user, err := s.repo.User.FindByEmail(ctx, claims.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, claims.Email)
	}

	if user.IsVerified {
		return fmt.Errorf("%w: user is already verified", ErrValidation)
	}

	if err := s.repo.User.SetVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}

	s.log.Info("Email verified",
		zap.String("email", user.Email),
		zap.String("user_id", user.ID.Hex()))

	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	// 3. Login is blocked until the email has been verified
	if !user.IsVerified {
		s.log.Warn("Unverified user tried to login", zap.String("user_id", user.ID.Hex()))
		return nil, fmt.Errorf("%w: email not verified", ErrUnauthorized)
	}

	// 4. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.Hex()))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	// 5. Issue token
	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, req.Email)
	}

	otp := utils.GenerateOTP(s.config.OTP.Length)
	expiresAt := time.Now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)

	if err := s.repo.User.SetResetOTP(ctx, user.ID, otp, expiresAt); err != nil {
		return fmt.Errorf("save reset OTP: %w", err)
	}

	if err := s.mail.SendPasswordResetOTP(user.Email, otp); err != nil {
		return fmt.Errorf("%w: send OTP email: %v", ErrUpstream, err)
	}

	s.log.Info("Password reset OTP sent",
		zap.String("user_id", user.ID.Hex()),
		zap.Time("expires_at", expiresAt))

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, req.Email)
	}

	// OTP must match and still be inside its expiry window
	if user.ResetOTP == "" || user.ResetOTP != req.OTP ||
		user.ResetOTPExpires == nil || user.ResetOTPExpires.Before(time.Now()) {
		return fmt.Errorf("%w: invalid or expired OTP", ErrValidation)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("process password: %w", err)
	}

	if err := s.repo.User.ResetPassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.Hex()))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) issueToken(user *entity.User) (string, time.Time, error) {
	expiryHours := s.config.JWT.ExpiryHours
	if expiryHours <= 0 {
		expiryHours = 24
	}

	token, err := utils.GenerateAuthToken(user.ID.Hex(), string(user.Role), s.config.JWT.Secret, expiryHours)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, time.Now().Add(time.Duration(expiryHours) * time.Hour), nil
}

func (s *authService) sendVerificationEmail(email string) {
	token, err := utils.GenerateEmailToken(email, s.config.JWT.Secret)
	if err != nil {
		s.log.Error("Failed to sign verification token", zap.Error(err), zap.String("email", email))
		return
	}

	baseURL := s.config.App.FrontendURL
	if baseURL == "" {
		baseURL = "http://localhost:" + s.config.App.Port
	}
	link := fmt.Sprintf("%s/api/user/verify-email?token=%s", baseURL, token)

	if err := s.mail.SendVerificationEmail(email, link); err != nil {
		s.log.Error("Failed to send verification email", zap.Error(err), zap.String("email", email))
	}
}
