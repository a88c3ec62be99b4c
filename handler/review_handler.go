package handler

import (
	"github.com/gin-gonic/gin"

	"chronotes/middleware"
	"chronotes/usecase"
	"chronotes/utils"
)

// ReviewBoardHandler returns the four review columns for the session's
// notes.
func ReviewBoardHandler(c *gin.Context, noteService *usecase.NoteService) {
	board, err := noteService.Board(c.Request.Context(), middleware.BackendFrom(c))
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, board)
}
