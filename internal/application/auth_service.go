package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-api/internal/domain/entity"
	repo "github.com/oksasatya/todolist-api/internal/domain/repository"
	"github.com/oksasatya/todolist-api/pkg/helpers"
)

// AuthService handles registration, login, session refresh and logout.
// Sessions live in Redis as hashes keyed by user id; the session id (sid)
// inside the hash must match the sid claim of the presented token.
type AuthService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, sessionTTL, rememberTTL time.Duration) *AuthService {
	return &AuthService{
		Users:       users,
		JWT:         jwt,
		Redis:       rdb,
		Logger:      logger,
		SessionTTL:  sessionTTL,
		RememberTTL: rememberTTL,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register validates the input, creates the account with a bcrypt hash and
// establishes a session for the new user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	if err := s.validateRegistration(in); err != nil {
		return nil, TokenPair{}, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.Users.Create(u); err != nil {
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokens(ctx, u, false)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) validateRegistration(in RegisterInput) error {
	fe := FieldErrors{}
	if in.Name == "" {
		fe["name"] = "is required"
	} else if len(in.Name) > 255 {
		fe["name"] = "must be at most 255 characters long"
	}
	if in.Email == "" {
		fe["email"] = "is required"
	} else if len(in.Email) > 255 {
		fe["email"] = "must be at most 255 characters long"
	}
	if len(in.Password) < 8 {
		fe["password"] = "must be at least 8 characters long"
	} else if in.Password != in.PasswordConfirmation {
		fe["password"] = "confirmation does not match"
	}
	if len(fe) > 0 {
		return fe
	}

	// Uniqueness check; the column's unique index still backs this up under
	// concurrent registration.
	existing, err := s.Users.GetByEmail(in.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if existing != nil {
		return FieldErrors{"email": "has already been taken"}
	}
	return nil
}

// Authenticate validates email/password and returns the user without issuing
// tokens. Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and establishes a fresh session. The session id is
// always newly generated here, which is what invalidates any sid a caller may
// have fixated before authenticating.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u, remember)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates an access/refresh pair under a new session id and
// records the session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User, remember bool) (TokenPair, error) {
	sid := uuid.NewString()
	sessionTTL := s.SessionTTL
	refreshTTL := s.JWT.RefreshTTL
	if remember {
		sessionTTL = s.RememberTTL
		refreshTTL = s.RememberTTL
	}

	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshTokenTTL(u.ID, sid, refreshTTL)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and token pair from a refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// The token's sid must match the live session.
	if s.Redis != nil {
		key := sessionKey(u.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.SessionTTL)
		_, _ = pipe.Exec(ctx)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, u.ID, nil
}

// Logout invalidates the server-side session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil || userID == "" {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}

// GetProfile returns the account for userID.
func (s *AuthService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
