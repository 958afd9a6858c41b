//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"jyotish/backend/internal/repository"
)

// Settings keys backing the single admin account.
const (
	KeyUserUsername     = "user.username"
	KeyUserNickname     = "user.nickname"
	KeyUserEmail        = "user.email"
	KeyUserPasswordHash = "user.password_hash"
	KeyUserJWTSecret    = "user.jwt_secret"
)

const tokenLifetime = 7 * 24 * time.Hour

var (
	errUsernameRequired = fmt.Errorf("%w: username required", ErrInvalid)
	errInvalidUsername  = fmt.Errorf("%w: invalid username", ErrInvalid)
	errEmailRequired    = fmt.Errorf("%w: email required", ErrInvalid)
	errPasswordRequired = fmt.Errorf("%w: password required", ErrInvalid)
	errPasswordTooShort = fmt.Errorf("%w: password too short", ErrInvalid)
	errUserExists       = fmt.Errorf("%w: user already exists", ErrConflict)
	errUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
	errInvalidPassword  = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{2,31}$`)

// UserDTO is the admin account as shown to the frontend.
type UserDTO struct {
	Username string
	Nickname string
	Email    string
}

// AuthResponse carries the account and a fresh session token.
type AuthResponse struct {
	User  *UserDTO
	Token string
}

// AuthService manages the single administrator account and its sessions.
type AuthService interface {
	IsRegistered(ctx context.Context) (bool, error)
	Register(ctx context.Context, username, nickname, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error)
	ValidateToken(token string) (bool, error)
	CurrentUser(ctx context.Context) (*UserDTO, error)
	UpdateProfile(ctx context.Context, nickname, email string) (*UserDTO, error)
}

type authService struct {
	settings repository.SettingsRepository
}

// NewAuthService creates the auth service over the settings store.
func NewAuthService(settings repository.SettingsRepository) AuthService {
	return &authService{settings: settings}
}

func (s *authService) IsRegistered(ctx context.Context) (bool, error) {
	setting, err := s.settings.Get(ctx, KeyUserUsername)
	if err != nil {
		return false, fmt.Errorf("read username: %w", err)
	}
	return setting != nil && setting.Value != "", nil
}

func (s *authService) Register(ctx context.Context, username, nickname, email, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	nickname = strings.TrimSpace(nickname)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errUsernameRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, errInvalidUsername
	}
	if email == "" {
		return nil, errEmailRequired
	}
	if password == "" {
		return nil, errPasswordRequired
	}
	if len(password) < 6 {
		return nil, errPasswordTooShort
	}

	registered, err := s.IsRegistered(ctx)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, errUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)

	if nickname == "" {
		nickname = username
	}

	values := map[string]string{
		KeyUserUsername:     username,
		KeyUserNickname:     nickname,
		KeyUserEmail:        email,
		KeyUserPasswordHash: string(hash),
		KeyUserJWTSecret:    secret,
	}
	for key, value := range values {
		if err := s.settings.Set(ctx, key, value); err != nil {
			return nil, fmt.Errorf("store %s: %w", key, err)
		}
	}

	token, err := s.signToken(username, secret)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:  &UserDTO{Username: username, Nickname: nickname, Email: email},
		Token: token,
	}, nil
}

func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" {
		return nil, errUsernameRequired
	}
	if password == "" {
		return nil, errPasswordRequired
	}

	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}

	matches := strings.EqualFold(usernameOrEmail, user.username) ||
		strings.EqualFold(usernameOrEmail, user.email)
	// A wrong identity and a wrong password answer identically.
	if !matches {
		return nil, errInvalidPassword
	}
	if bcrypt.CompareHashAndPassword([]byte(user.passwordHash), []byte(password)) != nil {
		return nil, errInvalidPassword
	}

	token, err := s.signToken(user.username, user.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:  &UserDTO{Username: user.username, Nickname: user.nickname, Email: user.email},
		Token: token,
	}, nil
}

func (s *authService) ValidateToken(token string) (bool, error) {
	user, err := s.loadUser(context.Background())
	if err != nil {
		return false, err
	}
	if user == nil || user.jwtSecret == "" {
		return false, nil
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(user.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return false, nil
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return false, nil
	}
	return subject == user.username, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*UserDTO, error) {
	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}
	return &UserDTO{Username: user.username, Nickname: user.nickname, Email: user.email}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, nickname, email string) (*UserDTO, error) {
	nickname = strings.TrimSpace(nickname)
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errEmailRequired
	}

	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}

	if nickname == "" {
		nickname = user.nickname
	}
	if err := s.settings.Set(ctx, KeyUserNickname, nickname); err != nil {
		return nil, fmt.Errorf("store nickname: %w", err)
	}
	if err := s.settings.Set(ctx, KeyUserEmail, email); err != nil {
		return nil, fmt.Errorf("store email: %w", err)
	}
	return &UserDTO{Username: user.username, Nickname: nickname, Email: email}, nil
}

type storedUser struct {
	username     string
	nickname     string
	email        string
	passwordHash string
	jwtSecret    string
}

func (s *authService) loadUser(ctx context.Context) (*storedUser, error) {
	settings, err := s.settings.GetByPrefix(ctx, "user.")
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var user storedUser
	for _, setting := range settings {
		switch setting.Key {
		case KeyUserUsername:
			user.username = setting.Value
		case KeyUserNickname:
			user.nickname = setting.Value
		case KeyUserEmail:
			user.email = setting.Value
		case KeyUserPasswordHash:
			user.passwordHash = setting.Value
		case KeyUserJWTSecret:
			user.jwtSecret = setting.Value
		}
	}
	if user.username == "" {
		return nil, nil
	}
	if user.nickname == "" {
		user.nickname = user.username
	}
	return &user, nil
}

func (s *authService) signToken(username, secret string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
