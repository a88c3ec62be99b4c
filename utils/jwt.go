package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	JWTSecretKey               string
	JWTExpirationTime          int64 // seconds
	RefreshTokenExpirationTime int64 // seconds
)

const tokenIssuer = "chronotes"

func InitJWT() {
	if os.Getenv("GO_ENV") == "test" {
		if os.Getenv("JWT_SECRET_KEY") == "" {
			os.Setenv("JWT_SECRET_KEY", "test_secret_key")
		}
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}

	JWTExpirationTime = int64(GetEnvAsInt("JWT_EXPIRATION_TIME", 3600))
	RefreshTokenExpirationTime = int64(GetEnvAsInt("REFRESH_TOKEN_EXPIRATION_TIME", 604800))
}

// TokenClaims is what a validated token carries. SessionID is empty for
// tokens minted outside a login session.
type TokenClaims struct {
	UserID    string
	SessionID string
}

// GenerateAccessToken signs a short-lived token carrying the user id and the
// session it was minted under.
func GenerateAccessToken(userID, sessionID string) (string, error) {
	return generateToken(userID, sessionID, "access", time.Duration(JWTExpirationTime)*time.Second)
}

// GenerateRefreshToken signs a long-lived token usable only at the refresh
// endpoint.
func GenerateRefreshToken(userID, sessionID string) (string, error) {
	return generateToken(userID, sessionID, "refresh", time.Duration(RefreshTokenExpirationTime)*time.Second)
}

func generateToken(userID, sessionID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	if sessionID != "" {
		claims["session_id"] = sessionID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(JWTSecretKey))
}

// ParseToken validates signature, issuer, expiry and token type, returning
// the claims the token was minted with.
func ParseToken(tokenString, wantType string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(JWTSecretKey), nil
	})
	if err != nil {
		return TokenClaims{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, errors.New("invalid token claims")
	}

	if iss, _ := claims["iss"].(string); iss != tokenIssuer {
		return TokenClaims{}, errors.New("invalid token issuer")
	}
	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return TokenClaims{}, errors.New("invalid token type")
	}
	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() > int64(exp) {
		return TokenClaims{}, errors.New("token has expired")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return TokenClaims{}, errors.New("invalid user ID in token")
	}
	sessionID, _ := claims["session_id"].(string)
	return TokenClaims{UserID: userID, SessionID: sessionID}, nil
}

// TokenRemainingTTL reports how long a token stays valid, for blacklisting
// on logout. Zero means already expired or unparseable.
func TokenRemainingTTL(tokenString string) time.Duration {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 0 {
		return 0
	}
	return remaining
}
