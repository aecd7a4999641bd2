package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"spendtrack/internal/models"
	"spendtrack/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows. Bad email and bad password both surface as
// ErrInvalidCredentials so login failures leak nothing about which was wrong.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// TokenConfig is the immutable token signing setup, injected at startup.
// Now is the clock used for issuing and verifying; tests supply fixed
// instants to exercise expiry deterministically.
type TokenConfig struct {
	SigningKey string
	TTL        time.Duration
	Now        func() time.Time
}

// AuthService handles registration, login and token verification.
type AuthService struct {
	users  repository.Users
	tokens TokenConfig
}

func NewAuthService(users repository.Users, tokens TokenConfig) *AuthService {
	if tokens.Now == nil {
		tokens.Now = time.Now
	}
	return &AuthService{users: users, tokens: tokens}
}

// Claims defines JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// Register creates an account and returns it with a freshly issued token.
func (s *AuthService) Register(name, email, password string) (models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, "", fmt.Errorf("%w: name, email, and password are required", ErrInvalidArgument)
	}
	if !strings.Contains(email, "@") {
		return models.User{}, "", fmt.Errorf("%w: malformed email", ErrInvalidArgument)
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return models.User{}, "", err
	}
	if existing != nil {
		return models.User{}, "", ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	id, err := s.users.Create(name, email, hash)
	if err != nil {
		// The UNIQUE constraint closes the race between the lookup above
		// and the insert.
		if strings.Contains(err.Error(), "UNIQUE") {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	user := models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: s.tokens.Now().UTC(),
	}

	token, err := s.issueToken(id)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login validates credentials and returns a signed token.
func (s *AuthService) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(u.ID)
}

// ParseToken verifies a bearer token and returns the embedded user id.
// Missing, malformed, badly signed and expired tokens all come back as
// ErrInvalidToken; callers get no hint which check failed.
func (s *AuthService) ParseToken(accessToken string) (int64, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.tokens.SigningKey), nil
	}, jwt.WithTimeFunc(s.tokens.Now))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int64) (string, error) {
	now := s.tokens.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokens.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.tokens.SigningKey))
}
