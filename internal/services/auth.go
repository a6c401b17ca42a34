package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/apierr"
	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/repos"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, email, password, name string) error
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	Logout(ctx context.Context, token string) error
	// Authorize resolves the session behind token, loads the user, and
	// optionally enforces a required role. requiredRole == "" means any
	// authenticated user.
	Authorize(ctx context.Context, token string, requiredRole types.UserRole) (*types.User, *types.Session, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	sessionRepo  repos.SessionRepo
	sessionCache *SessionCache
	jwtSecretKey string
	sessionTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	sessionRepo repos.SessionRepo,
	sessionCache *SessionCache,
	jwtSecretKey string,
	sessionTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		jwtSecretKey: jwtSecretKey,
		sessionTTL:   sessionTTL,
	}
}

func (as *authService) Register(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if len(password) < 8 {
		return apierr.Validation("Password must be at least 8 characters")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return apierr.Upstream("Failed to register user", err)
	}
	if exists {
		return apierr.Upstream("User with this email already exists", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apierr.Upstream("Failed to register user", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Name:     name,
		Role:     types.RoleUser,
	}
	if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
		return apierr.Upstream("Failed to register user", err)
	}
	as.log.Info("User registered", "user_id", user.ID, "email", email)
	return nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.Upstream("Failed to log in", err)
	}
	if user == nil {
		return nil, "", apierr.Upstream("Invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apierr.Upstream("Invalid email or password", nil)
	}

	sessionID := uuid.New()
	expiresAt := time.Now().Add(as.sessionTTL)
	token, err := as.signToken(user.ID, sessionID, expiresAt)
	if err != nil {
		return nil, "", apierr.Upstream("Failed to log in", err)
	}

	session := &types.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if _, err := as.sessionRepo.Create(ctx, nil, session); err != nil {
		return nil, "", apierr.Upstream("Failed to log in", err)
	}
	as.sessionCache.Set(ctx, session)
	as.log.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

func (as *authService) Logout(ctx context.Context, token string) error {
	if err := as.sessionRepo.DeleteByToken(ctx, nil, token); err != nil {
		return apierr.Upstream("Failed to log out", err)
	}
	as.sessionCache.Delete(ctx, token)
	return nil
}

func (as *authService) Authorize(ctx context.Context, token string, requiredRole types.UserRole) (*types.User, *types.Session, error) {
	if token == "" {
		return nil, nil, apierr.Unauthenticated("Authentication required")
	}

	parsed, err := jwt.ParseWithClaims(token, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil, apierr.Unauthenticated("Authentication required")
	}

	session := as.sessionCache.Get(ctx, token)
	if session == nil {
		session, err = as.sessionRepo.GetByToken(ctx, nil, token)
		if err != nil {
			return nil, nil, apierr.Upstream("Failed to resolve session", err)
		}
		if session != nil {
			as.sessionCache.Set(ctx, session)
		}
	}
	if session == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil, apierr.Unauthenticated("Authentication required")
	}
	// Token is never serialized into the cache; restore it for downstream use
	// (logout deletes by token).
	session.Token = token

	user, err := as.userRepo.GetByID(ctx, nil, session.UserID)
	if err != nil {
		return nil, nil, apierr.Upstream("Failed to load user", err)
	}
	if user == nil {
		return nil, nil, apierr.NotFound("User not found")
	}

	if requiredRole != "" && user.Role != requiredRole {
		return nil, nil, apierr.Forbidden("Insufficient permissions")
	}
	return user, session, nil
}

func (as *authService) signToken(userID, sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        sessionID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
