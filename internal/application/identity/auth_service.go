package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/infrastructure/auth"
	"github.com/shopline/backend/internal/infrastructure/logger"
)

// AuthService handles registration, login and the token lifecycle
type AuthService struct {
	userRepo    identity.UserRepository
	sessionRepo identity.SessionRepository
	resetRepo   identity.PasswordResetRepository
	mailer      identity.Mailer
	jwt         *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	sessionRepo identity.SessionRepository,
	resetRepo identity.PasswordResetRepository,
	mailer identity.Mailer,
	jwt *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		mailer:      mailer,
		jwt:         jwt,
	}
}

// Register creates a customer account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}
	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates by email and password. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Email or password is incorrect")
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Email or password is incorrect")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh token and returns a new pair. The
// presented token must match the user's single active session.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}

	session, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
		}
		return nil, err
	}
	if !session.Matches(req.RefreshToken) || session.IsExpired() {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked")
	}

	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	session.Rotate(pair.RefreshToken, s.jwt.GetRefreshTokenExpiration())
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout drops the user's refresh session. Access tokens simply age out.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}

// ForgotPassword issues an OTP challenge and mails it. An unknown
// email is not revealed to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if !exists {
		logger.L(ctx).Info("password reset requested for unknown email")
		return nil
	}

	if err := s.resetRepo.DeleteByEmail(ctx, req.Email); err != nil {
		return err
	}

	reset, otp, err := identity.NewPasswordReset(req.Email)
	if err != nil {
		return err
	}
	if err := s.resetRepo.Save(ctx, reset); err != nil {
		return err
	}
	return s.mailer.SendPasswordResetOTP(ctx, reset.Email, otp)
}

// VerifyOTP checks the reset code ahead of the actual reset so the
// client can move to the new-password screen. The code stays valid
// for the following ResetPassword call.
func (s *AuthService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) error {
	reset, err := s.resetRepo.FindLatestByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("OTP_MISMATCH", "Reset code is incorrect")
		}
		return err
	}

	if err := reset.Verify(req.OTP); err != nil {
		if saveErr := s.resetRepo.Save(ctx, reset); saveErr != nil {
			return saveErr
		}
		return err
	}

	reset.MarkVerified()
	return s.resetRepo.Save(ctx, reset)
}

// ResendOTP replaces the outstanding challenge with a fresh code.
// Resends are rate-limited per challenge.
func (s *AuthService) ResendOTP(ctx context.Context, req ResendOTPRequest) error {
	reset, err := s.resetRepo.FindLatestByEmail(ctx, req.Email)
	if err == nil && !reset.ResendAllowed() {
		return shared.NewDomainError("OTP_LOCKED", "Please wait before requesting a new code")
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	return s.ForgotPassword(ctx, ForgotPasswordRequest{Email: req.Email})
}

// ResetPassword verifies the OTP and sets the new password. All
// sessions of the user are revoked.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	reset, err := s.resetRepo.FindLatestByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("OTP_MISMATCH", "Reset code is incorrect")
		}
		return err
	}

	if err := reset.Verify(req.OTP); err != nil {
		// persist the burned attempt before reporting the failure
		if saveErr := s.resetRepo.Save(ctx, reset); saveErr != nil {
			return saveErr
		}
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	reset.MarkUsed()
	if err := s.resetRepo.Save(ctx, reset); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUserID(ctx, user.ID)
}

// issueTokens generates a pair and upserts the refresh session
func (s *AuthService) issueTokens(ctx context.Context, user *identity.User) (*AuthResponse, error) {
	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	session := identity.NewSession(user.ID, pair.RefreshToken, s.jwt.GetRefreshTokenExpiration())
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:   ToUserResponse(user),
		Tokens: pair,
	}, nil
}
