package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"formiverse/internal/models"
	"formiverse/internal/repositories"
)

const (
	DefaultAccessTTL      = 15 * time.Minute
	DefaultRefreshTTL     = 7 * 24 * time.Hour
	DefaultLoginAccessTTL = 2 * time.Hour

	passwordBcryptCost = 12 // deliberately slow
)

// AccessClaims travel in the short-lived token; enough identity to render
// the UI without a user lookup.
type AccessClaims struct {
	UserID   int    `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the user id and the version counter the token was
// minted against.
type RefreshClaims struct {
	UserID       int `json:"user_id"`
	TokenVersion int `json:"token_version"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) bool

	// IssueTokens signs an access/refresh pair and persists the refresh hash,
	// invalidating whatever refresh token was stored before.
	IssueTokens(user *models.User, accessTTL time.Duration) (*TokenPair, error)
	VerifyAccessToken(token string) (*AccessClaims, error)

	// Refresh verifies and rotates a refresh token: single use per rotation.
	Refresh(refreshToken string) (*models.User, *TokenPair, error)

	ChangePassword(email, oldPassword, newPassword string) error

	AccessTTL() time.Duration
	LoginAccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type authService struct {
	users          repositories.UserRepository
	accessSecret   []byte
	refreshSecret  []byte
	accessTTL      time.Duration
	loginAccessTTL time.Duration
	refreshTTL     time.Duration
	now            func() time.Time
}

func NewAuthService(
	users repositories.UserRepository,
	accessSecret, refreshSecret string,
	accessTTL, loginAccessTTL, refreshTTL time.Duration,
) AuthService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if loginAccessTTL <= 0 {
		loginAccessTTL = DefaultLoginAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &authService{
		users:          users,
		accessSecret:   []byte(accessSecret),
		refreshSecret:  []byte(refreshSecret),
		accessTTL:      accessTTL,
		loginAccessTTL: loginAccessTTL,
		refreshTTL:     refreshTTL,
		now:            time.Now,
	}
}

func (s *authService) AccessTTL() time.Duration      { return s.accessTTL }
func (s *authService) LoginAccessTTL() time.Duration { return s.loginAccessTTL }
func (s *authService) RefreshTTL() time.Duration     { return s.refreshTTL }

func (s *authService) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), passwordBcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (s *authService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// hashRefreshToken digests the JWT before bcrypt: bcrypt caps input at 72
// bytes and a signed JWT is always longer.
func hashRefreshToken(token string) (string, error) {
	sum := sha256.Sum256([]byte(token))
	h, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(sum[:])), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func refreshTokenMatches(hash, token string) bool {
	sum := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(hex.EncodeToString(sum[:]))) == nil
}

func (s *authService) signAccess(user *models.User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &AccessClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

func (s *authService) signRefresh(userID, tokenVersion int) (string, error) {
	now := s.now()
	claims := &RefreshClaims{
		UserID:       userID,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
}

func (s *authService) IssueTokens(user *models.User, accessTTL time.Duration) (*TokenPair, error) {
	if accessTTL <= 0 {
		accessTTL = s.accessTTL
	}
	accessToken, err := s.signAccess(user, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	newVersion := user.TokenVersion + 1
	refreshToken, err := s.signRefresh(user.ID, newVersion)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	hash, err := hashRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("hash refresh token: %w", err)
	}
	expiresAt := s.now().Add(s.refreshTTL)
	if err := s.users.UpdateRefresh(user.ID, hash, expiresAt, newVersion); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	user.TokenVersion = newVersion

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func hmacKeyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		// accept HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}
}

func (s *authService) VerifyAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, hmacKeyFunc(s.accessSecret))
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) Refresh(refreshToken string) (*models.User, *TokenPair, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, hmacKeyFunc(s.refreshSecret))
	if err != nil || !token.Valid {
		return nil, nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.RefreshTokenHash == nil {
		return nil, nil, ErrUnauthorized
	}
	if user.RefreshExpiresAt != nil && s.now().After(*user.RefreshExpiresAt) {
		return nil, nil, ErrUnauthorized
	}
	// a token minted against an older version was rotated out, even if its
	// hash were somehow still stored
	if claims.TokenVersion != user.TokenVersion {
		return nil, nil, ErrUnauthorized
	}
	if !refreshTokenMatches(*user.RefreshTokenHash, refreshToken) {
		return nil, nil, ErrUnauthorized
	}

	pair, err := s.IssueTokens(user, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[auth][refresh] rotated user_id=%d version=%d", user.ID, user.TokenVersion)
	return user, pair, nil
}

func (s *authService) ChangePassword(email, oldPassword, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: email, old and new password are required", ErrInvalid)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalid)
	}
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if !s.CheckPassword(user.PasswordHash, oldPassword) {
		return fmt.Errorf("%w: invalid password", ErrInvalid)
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[auth][change-password] user_id=%d", user.ID)
	return nil
}
