package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"chronotes/middleware"
	"chronotes/repository"
	"chronotes/services"
	"chronotes/utils"
)

type LogoutDeps struct {
	Sessions  *repository.SessionRepo
	Cache     *services.SessionCache
	Blacklist *services.TokenBlacklist
}

// LogoutHandler ends the named session and revokes the current access token
// for the remainder of its lifetime.
func LogoutHandler(c *gin.Context, deps LogoutDeps) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Session ID is required")
		return
	}

	ctx := c.Request.Context()

	session, err := deps.Sessions.GetSession(ctx, req.SessionID)
	if err != nil || session.UserID != middleware.UserIDFrom(c) {
		utils.NotFound(c, "Session not found")
		return
	}

	if err := deps.Sessions.EndSession(ctx, req.SessionID); err != nil {
		utils.InternalError(c, "Failed to end session")
		return
	}

	if deps.Cache != nil {
		if err := deps.Cache.InvalidateSession(ctx, req.SessionID); err != nil {
			log.Printf("failed to invalidate cached session %s: %v", req.SessionID, err)
		}
	}

	token := middleware.TokenFrom(c)
	if ttl := utils.TokenRemainingTTL(token); ttl > 0 {
		if err := deps.Blacklist.Revoke(ctx, token, ttl); err != nil {
			log.Printf("failed to blacklist token: %v", err)
		}
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}

// LogoutAllHandler ends every active session for the user.
func LogoutAllHandler(c *gin.Context, deps LogoutDeps) {
	ctx := c.Request.Context()
	userID := middleware.UserIDFrom(c)

	sessions, err := deps.Sessions.GetUserActiveSessions(ctx, userID)
	if err != nil {
		utils.InternalError(c, "Failed to list sessions")
		return
	}

	if err := deps.Sessions.EndAllUserSessions(ctx, userID); err != nil {
		utils.InternalError(c, "Failed to end sessions")
		return
	}

	if deps.Cache != nil {
		if err := deps.Cache.InvalidateUserSessions(ctx, sessions); err != nil {
			log.Printf("failed to invalidate cached sessions for %s: %v", userID, err)
		}
	}

	utils.Success(c, gin.H{
		"message":        "All sessions ended",
		"sessions_ended": len(sessions),
	})
}

func GetActiveSessionsHandler(c *gin.Context, sessions *repository.SessionRepo) {
	list, err := sessions.GetUserActiveSessions(c.Request.Context(), middleware.UserIDFrom(c))
	if err != nil {
		utils.InternalError(c, "Failed to list sessions")
		return
	}
	utils.Success(c, list)
}
