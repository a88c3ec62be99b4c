package handler

import (
	"github.com/gin-gonic/gin"

	"chronotes/dto"
	"chronotes/middleware"
	"chronotes/usecase"
	"chronotes/utils"
)

// DeleteAllDataHandler wipes everything the session owns. The caller must
// type the literal confirmation phrase; the check happens before any
// backend call.
func DeleteAllDataHandler(c *gin.Context, noteService *usecase.NoteService) {
	var req dto.DeleteAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Confirmation phrase is required")
		return
	}

	err := noteService.DeleteAllData(c.Request.Context(), middleware.BackendFrom(c), req.Confirmation)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, gin.H{"message": "All data deleted"})
}
