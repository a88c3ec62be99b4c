package handler

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"

	"chronotes/dto"
	"chronotes/middleware"
	"chronotes/model"
	"chronotes/repository"
	"chronotes/services"
	"chronotes/store"
	"chronotes/utils"
)

type LoginDeps struct {
	Users           *repository.UserRepo
	Sessions        *repository.SessionRepo
	Cache           *services.SessionCache
	SessionDuration time.Duration
}

func LoginHandler(c *gin.Context, deps LoginDeps) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid login details")
		return
	}

	user, err := deps.Users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.AuthAttempts.WithLabelValues("failure", "login").Inc()
			utils.Unauthorized(c, "Invalid username or password")
			return
		}
		utils.InternalError(c, "Login failed")
		return
	}

	if !services.ComparePasswords(user.Password, req.Password) {
		middleware.AuthAttempts.WithLabelValues("failure", "login").Inc()
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	if user.TwoFactorEnabled {
		if !verifySecondFactor(user, req) {
			middleware.AuthAttempts.WithLabelValues("failure", "2fa").Inc()
			utils.Unauthorized(c, "Invalid two-factor code")
			return
		}
	}

	now := time.Now()
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)
	session := &model.Session{
		SessionID:      utils.GenerateID(),
		UserID:         user.UserID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, os, device),
		IPAddress:      c.ClientIP(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(deps.SessionDuration),
		LastActivityAt: now,
		IsActive:       true,
	}

	accessToken, err := utils.GenerateAccessToken(user.UserID, session.SessionID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.UserID, session.SessionID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := deps.Sessions.CreateSession(c.Request.Context(), session); err != nil {
		utils.InternalError(c, "Failed to create session")
		return
	}

	// Cache is an optimization; a miss falls back to Mongo.
	if deps.Cache != nil {
		if err := deps.Cache.SetSession(c.Request.Context(), session); err != nil {
			log.Printf("failed to cache session %s: %v", session.SessionID, err)
		}
	}

	middleware.AuthAttempts.WithLabelValues("success", "login").Inc()
	utils.Success(c, dto.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.SessionID,
		UserID:       user.UserID,
	})
}

// verifySecondFactor accepts either a current TOTP code or one of the
// stored recovery codes.
func verifySecondFactor(user *model.User, req dto.LoginRequest) bool {
	if req.TwoFactorCode != "" {
		return totp.Validate(req.TwoFactorCode, user.TwoFactorSecret)
	}
	if req.RecoveryCode != "" {
		hashed := utils.HashString(req.RecoveryCode)
		for _, code := range user.RecoveryCodes {
			if code == hashed {
				return true
			}
		}
	}
	return false
}
