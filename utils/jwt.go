package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const devSecret = "pizzaria-dev-secret"

var (
	jwtSecret = []byte(devSecret)
	tokenTTL  = 24 * time.Hour

	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

// InitJWT sets the signing secret and token lifetime. An empty secret keeps
// the development default.
func InitJWT(secret string, ttl time.Duration) {
	if secret == "" {
		InfoLogger.Warn("JWT secret not configured, using development secret")
		secret = devSecret
	}
	jwtSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

type CustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, role string) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sistema-pizzaria",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		ErrorLogger.Printf("Error generating token: %v", err)
		return "", err
	}
	return tokenString, nil
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, errors.New("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// BlacklistToken revokes a token until its natural expiry.
func BlacklistToken(token string) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = time.Now().Add(tokenTTL)
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	expiry, exists := blacklistedTokens[token]
	blacklistMutex.RUnlock()
	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}

	blacklistMutex.Lock()
	delete(blacklistedTokens, token)
	blacklistMutex.Unlock()
	return false
}
