package middleware

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"chronotes/localstore"
	"chronotes/model"
	"chronotes/repository"
	"chronotes/services"
	"chronotes/store"
	"chronotes/utils"
)

const (
	ModeAuthenticated = "authenticated"
	ModeGuest         = "guest"

	ctxMode    = "session_mode"
	ctxUserID  = "user_id"
	ctxToken   = "access_token"
	ctxBackend = "backend"
)

// SessionValidator checks that the session an access token was minted under
// is still active, and records activity. Satisfied by repository.SessionRepo.
type SessionValidator interface {
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	TouchSession(ctx context.Context, sessionID string) error
}

// SessionCacheReader is the Redis read path consulted before Mongo.
// Satisfied by services.SessionCache.
type SessionCacheReader interface {
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
}

// BackendResolver picks the storage backend for each request. A request with
// a valid bearer token is served by the remote store scoped to its user; a
// request with no token at all is a guest session served by the embedded
// local store. A present-but-invalid token is rejected, never downgraded to
// guest.
type BackendResolver struct {
	DB        *mongo.Database
	Retry     services.RetryPolicy
	Local     *localstore.Local
	Blacklist *services.TokenBlacklist
	Sessions  SessionValidator
	Cache     SessionCacheReader
}

func (r *BackendResolver) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(ctxMode, ModeGuest)
			c.Set(ctxBackend, store.Backend(r.Local))
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if r.Blacklist.IsRevoked(c.Request.Context(), tokenString) {
			utils.Unauthorized(c, "Token has been invalidated")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString, "access")
		if err != nil {
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		if r.Sessions != nil && claims.SessionID != "" {
			ctx := c.Request.Context()
			session, err := r.activeSession(ctx, claims.SessionID)
			if err != nil || !session.IsActive || time.Now().After(session.ExpiresAt) {
				utils.Unauthorized(c, "Session has expired")
				c.Abort()
				return
			}
			if err := r.Sessions.TouchSession(ctx, claims.SessionID); err != nil {
				log.Printf("failed to touch session %s: %v", claims.SessionID, err)
			}
		}

		c.Set(ctxMode, ModeAuthenticated)
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxToken, tokenString)
		c.Set(ctxBackend, store.Backend(repository.NewRemote(r.DB, r.Retry, claims.UserID)))
		c.Next()
	}
}

// activeSession reads the cache first so steady-state requests do not hit
// Mongo; a miss or a cache failure falls back to the session collection.
func (r *BackendResolver) activeSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if r.Cache != nil {
		session, err := r.Cache.GetSession(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, services.ErrSessionNotCached) {
			log.Printf("session cache read for %s failed: %v", sessionID, err)
		}
	}
	return r.Sessions.GetSession(ctx, sessionID)
}

// RequireAuth guards routes that only exist for authenticated sessions
// (logout, session management, history).
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxMode) != ModeAuthenticated {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func BackendFrom(c *gin.Context) store.Backend {
	return c.MustGet(ctxBackend).(store.Backend)
}

func UserIDFrom(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func TokenFrom(c *gin.Context) string {
	return c.GetString(ctxToken)
}

func ModeFrom(c *gin.Context) string {
	return c.GetString(ctxMode)
}
