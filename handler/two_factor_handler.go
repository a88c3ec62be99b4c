package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"

	"chronotes/dto"
	"chronotes/middleware"
	"chronotes/repository"
	"chronotes/utils"
)

// Enable2FAHandler provisions a TOTP secret and recovery codes. The secret
// is stored disabled until the user proves they can produce a code.
func Enable2FAHandler(c *gin.Context, userRepo *repository.UserRepo) {
	ctx := c.Request.Context()
	userID := middleware.UserIDFrom(c)

	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		utils.InternalError(c, "Failed to load user")
		return
	}
	if user.TwoFactorEnabled {
		utils.Conflict(c, "Two-factor authentication is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Chronotes",
		AccountName: user.Username,
	})
	if err != nil {
		utils.InternalError(c, "Failed to generate secret")
		return
	}

	recoveryCodes, err := utils.GenerateRecoveryCodes()
	if err != nil {
		utils.InternalError(c, "Failed to generate recovery codes")
		return
	}

	if err := userRepo.SetTwoFactor(ctx, userID, key.Secret(),
		utils.HashRecoveryCodes(recoveryCodes), false); err != nil {
		utils.InternalError(c, "Failed to store secret")
		return
	}

	// Recovery codes are shown once, only hashes are stored.
	utils.Success(c, gin.H{
		"secret":         key.Secret(),
		"otpauth_url":    key.URL(),
		"recovery_codes": recoveryCodes,
	})
}

// Verify2FAHandler confirms the provisioned secret and switches the account
// to require a second factor.
func Verify2FAHandler(c *gin.Context, userRepo *repository.UserRepo) {
	var req dto.TwoFactorVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Verification code is required")
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserIDFrom(c)

	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		utils.InternalError(c, "Failed to load user")
		return
	}
	if user.TwoFactorSecret == "" {
		utils.BadRequest(c, "Two-factor setup has not been started")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		middleware.AuthAttempts.WithLabelValues("failure", "2fa").Inc()
		utils.Unauthorized(c, "Invalid verification code")
		return
	}

	if err := userRepo.SetTwoFactor(ctx, userID, user.TwoFactorSecret,
		user.RecoveryCodes, true); err != nil {
		utils.InternalError(c, "Failed to enable two-factor authentication")
		return
	}

	middleware.AuthAttempts.WithLabelValues("success", "2fa").Inc()
	utils.Success(c, gin.H{"message": "Two-factor authentication enabled"})
}
