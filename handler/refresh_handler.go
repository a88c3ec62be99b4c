package handler

import (
	"github.com/gin-gonic/gin"

	"chronotes/dto"
	"chronotes/utils"
)

// RefreshHandler exchanges a valid refresh token for a fresh access token.
func RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Refresh token is required")
		return
	}

	claims, err := utils.ParseToken(req.RefreshToken, "refresh")
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.SessionID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.Success(c, gin.H{"token": accessToken})
}
