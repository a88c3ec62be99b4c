package handler

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"chronotes/middleware"
	"chronotes/model"
	"chronotes/services"
	"chronotes/utils"
)

// AccountUserStore is the slice of repository.UserRepo account deletion needs.
type AccountUserStore interface {
	FindByID(ctx context.Context, userID string) (*model.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AccountSessionStore is the slice of repository.SessionRepo account deletion
// needs.
type AccountSessionStore interface {
	GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error)
	EndAllUserSessions(ctx context.Context, userID string) error
}

type AccountDeps struct {
	Users     AccountUserStore
	Sessions  AccountSessionStore
	Cache     *services.SessionCache
	Blacklist *services.TokenBlacklist
}

// DeleteAccountHandler permanently removes the authenticated user: their
// notes, folders, history and flashcards, every active session, and finally
// the account record itself. Requires the current password.
func DeleteAccountHandler(c *gin.Context, deps AccountDeps) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Password is required")
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserIDFrom(c)

	user, err := deps.Users.FindByID(ctx, userID)
	if err != nil {
		utils.InternalError(c, "Failed to load account")
		return
	}
	if !services.ComparePasswords(user.Password, req.Password) {
		utils.Forbidden(c, "Password is incorrect")
		return
	}

	if err := middleware.BackendFrom(c).DeleteAll(ctx); err != nil {
		utils.InternalError(c, "Failed to delete account data")
		return
	}

	sessions, err := deps.Sessions.GetUserActiveSessions(ctx, userID)
	if err != nil {
		log.Printf("failed to list sessions for deleted account %s: %v", userID, err)
	}
	if err := deps.Sessions.EndAllUserSessions(ctx, userID); err != nil {
		log.Printf("failed to end sessions for deleted account %s: %v", userID, err)
	}
	if deps.Cache != nil {
		if err := deps.Cache.InvalidateUserSessions(ctx, sessions); err != nil {
			log.Printf("failed to invalidate cached sessions for %s: %v", userID, err)
		}
	}

	token := middleware.TokenFrom(c)
	if ttl := utils.TokenRemainingTTL(token); ttl > 0 {
		if err := deps.Blacklist.Revoke(ctx, token, ttl); err != nil {
			log.Printf("failed to blacklist token: %v", err)
		}
	}

	if err := deps.Users.DeleteUser(ctx, userID); err != nil {
		utils.InternalError(c, "Failed to delete account")
		return
	}

	utils.Success(c, gin.H{"message": "Account deleted"})
}
