package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"chronotes/dto"
	"chronotes/middleware"
	"chronotes/model"
	"chronotes/repository"
	"chronotes/services"
	"chronotes/store"
	"chronotes/utils"
)

func RegistrationHandler(c *gin.Context, userRepo *repository.UserRepo) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid registration details")
		return
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user := &model.User{
		UserID:    utils.GenerateID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	if err := userRepo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			middleware.AuthAttempts.WithLabelValues("failure", "register").Inc()
			utils.Conflict(c, "Username or email already taken")
			return
		}
		utils.InternalError(c, "Failed to create user")
		return
	}

	middleware.AuthAttempts.WithLabelValues("success", "register").Inc()
	utils.Created(c, gin.H{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}
