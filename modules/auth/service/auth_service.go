package service

import (
	"campusflow/core/cache"
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/mailer"
	"campusflow/core/utils"
	"campusflow/modules/auth/dto"
	userEntity "campusflow/modules/user/entity"
	userMapper "campusflow/modules/user/mapper"
	userRepository "campusflow/modules/user/repository"
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStore is the slice of the user repository auth needs.
type UserStore interface {
	Create(ctx context.Context, user *userEntity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error)
	GetByEmail(ctx context.Context, email string) (*userEntity.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*userEntity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	LinkGoogle(ctx context.Context, id uuid.UUID, sub string) error
	TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error
}

type AuthService struct {
	users  UserStore
	cache  cache.Cache
	mailer mailer.Mailer
	google GoogleIdentity
	now    func() time.Time
}

func NewAuthService(users UserStore, c cache.Cache, m mailer.Mailer, google GoogleIdentity) *AuthService {
	return &AuthService{users: users, cache: c, mailer: m, google: google, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func resetKey(email string) string {
	return constants.RedisKeyResetCode + normalizeEmail(email)
}

func (s *AuthService) issue(user *userEntity.User) (*dto.AuthResponse, *errors.AppError) {
	pair, err := utils.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:Issue:GenerateTokenPair", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate tokens", err)
	}
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		User:         userMapper.ToUserResponse(user),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	email := normalizeEmail(req.Email)
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check email", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "email is already registered", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := userEntity.NewUser(email, utils.Sanitize(req.Name))
	user.PasswordHash = &hash
	user.Course = utils.Sanitize(req.Course)
	user.Year = req.Year
	for _, i := range req.Interests {
		if v := strings.ToLower(utils.Sanitize(i)); v != "" {
			user.Interests = append(user.Interests, v)
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		if err == userRepository.ErrEmailTaken {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "email is already registered", nil)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create account", err)
	}
	logger.Info("AuthService:Register", "user_id", user.ID)
	return s.issue(user)
}

// Login blocks an email for 15 minutes after five consecutive failures.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	email := normalizeEmail(req.Email)

	blocked, err := s.cache.IsLoginBlocked(ctx, email)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check login attempts", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrTooManyRequests, "too many failed attempts, try again in 15 minutes", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil || user.PasswordHash == nil || !utils.ComparePassword(*user.PasswordHash, req.Password) {
		if _, errIncrement := s.cache.IncrementLoginAttempt(ctx, email); errIncrement != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt", errIncrement)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	if err := s.cache.ResetLoginAttempts(ctx, email); err != nil {
		logger.Error("AuthService:Login:ResetLoginAttempts", err)
	}
	now := s.now().UTC()
	if err := s.users.TouchLastSeen(ctx, user.ID, now); err != nil {
		logger.Error("AuthService:Login:TouchLastSeen", err)
	}
	user.LastSeen = &now
	return s.issue(user)
}

// Refresh rotates the pair; the presented refresh token cannot be used again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, *errors.AppError) {
	claims, err := utils.ValidateAndParseToken(refreshToken)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "refresh token expired", nil)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid refresh token", nil)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid refresh token", nil)
	}

	revoked, err := s.cache.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token blacklist", err)
	}
	if revoked {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "refresh token has been used", nil)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "account no longer exists", nil)
	}

	if err := s.cache.AddToTokenBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to revoke refresh token", err)
	}
	return s.issue(user)
}

func (s *AuthService) Logout(ctx context.Context, claims *utils.TokenClaims) *errors.AppError {
	if err := s.cache.AddToTokenBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}

// ForgotPassword never reports whether the account exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:ForgotPassword:GetByEmail", err)
		return
	}
	if user == nil {
		logger.Info("AuthService:ForgotPassword:UnknownEmail")
		return
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		logger.Error("AuthService:ForgotPassword:GenerateResetCode", err)
		return
	}
	if err := s.cache.Set(ctx, resetKey(email), code, constants.ResetCodeTTL); err != nil {
		logger.Error("AuthService:ForgotPassword:SetCode", err)
		return
	}

	body, err := mailer.RenderReset(mailer.ResetData{Name: user.Name, Code: code, Minutes: int(constants.ResetCodeTTL.Minutes())})
	if err != nil {
		logger.Error("AuthService:ForgotPassword:Render", err)
		return
	}
	if err := s.mailer.Send(ctx, []string{user.Email}, "Your CampusFlow reset code", body); err != nil {
		logger.Error("AuthService:ForgotPassword:Send", err)
	}
}

func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) *errors.AppError {
	key := resetKey(req.Email)
	stored, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to read reset code", err)
	}
	if !ok || subtle.ConstantTimeCompare([]byte(strings.ToUpper(strings.TrimSpace(req.Code))), []byte(stored)) != 1 {
		return errors.NewAppError(errors.ErrInvalidInput, "invalid or expired code", nil)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return errors.NewAppError(errors.ErrInvalidInput, "invalid or expired code", nil)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to update password", err)
	}
	if err := s.cache.Del(ctx, key); err != nil {
		logger.Error("AuthService:ResetPassword:DelCode", err)
	}
	_ = s.cache.ResetLoginAttempts(ctx, user.Email)
	return nil
}

func (s *AuthService) GoogleAuthURL(ctx context.Context) (string, *errors.AppError) {
	state := utils.GenerateRandomString(32)
	if err := s.cache.Set(ctx, constants.RedisKeyOAuthState+state, "1", constants.OAuthStateTTL); err != nil {
		logger.Error("AuthService:GoogleAuthURL:SaveState", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to store state token", err)
	}
	return s.google.AuthURL(state), nil
}

func (s *AuthService) GoogleCallback(ctx context.Context, code, state string) (*dto.AuthResponse, *errors.AppError) {
	key := constants.RedisKeyOAuthState + state
	_, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate state token", err)
	}
	if !ok || state == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired state token", nil)
	}
	_ = s.cache.Del(ctx, key)

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:Exchange", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "google sign-in failed", err)
	}
	return s.signInGoogle(ctx, profile)
}

func (s *AuthService) GoogleIDToken(ctx context.Context, idToken string) (*dto.AuthResponse, *errors.AppError) {
	profile, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		logger.Error("AuthService:GoogleIDToken:Verify", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid google id token", err)
	}
	return s.signInGoogle(ctx, profile)
}

// signInGoogle finds the user by subject, then by email (linking it), then creates one.
func (s *AuthService) signInGoogle(ctx context.Context, profile *GoogleProfile) (*dto.AuthResponse, *errors.AppError) {
	if profile.Sub == "" || profile.Email == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "google profile is incomplete", nil)
	}

	user, err := s.users.GetByGoogleSub(ctx, profile.Sub)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		user, err = s.users.GetByEmail(ctx, profile.Email)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
		}
		if user != nil {
			if err := s.users.LinkGoogle(ctx, user.ID, profile.Sub); err != nil {
				return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to link google account", err)
			}
		}
	}
	if user == nil {
		name := utils.Sanitize(profile.Name)
		if name == "" {
			name = strings.SplitN(profile.Email, "@", 2)[0]
		}
		user = userEntity.NewUser(normalizeEmail(profile.Email), name)
		sub := profile.Sub
		user.GoogleSub = &sub
		if err := s.users.Create(ctx, user); err != nil {
			return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create account", err)
		}
		logger.Info("AuthService:SignInGoogle:Created", "user_id", user.ID)
	}

	now := s.now().UTC()
	_ = s.users.TouchLastSeen(ctx, user.ID, now)
	user.LastSeen = &now
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.AuthResponse, *errors.AppError) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return &dto.AuthResponse{User: userMapper.ToUserResponse(user)}, nil
}
