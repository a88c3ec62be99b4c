package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"chronotes/dto"
	"chronotes/middleware"
	"chronotes/store"
	"chronotes/usecase"
	"chronotes/utils"
)

func ListFoldersHandler(c *gin.Context, folderService *usecase.FolderService) {
	listings, err := folderService.List(c.Request.Context(), middleware.BackendFrom(c))
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, listings)
}

func CreateFolderHandler(c *gin.Context, folderService *usecase.FolderService) {
	var req dto.FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	folder, err := folderService.Create(c.Request.Context(), middleware.BackendFrom(c), req.Name)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Created(c, folder)
}

func RenameFolderHandler(c *gin.Context, folderService *usecase.FolderService) {
	var req dto.FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	folder, err := folderService.Rename(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Folder not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, folder)
}

// DeleteFolderHandler requires ?confirm=true; deleting a folder destroys
// every note inside it.
func DeleteFolderHandler(c *gin.Context, folderService *usecase.FolderService) {
	if c.Query("confirm") != "true" {
		utils.BadRequest(c, "Folder deletion must be confirmed with confirm=true")
		return
	}

	err := folderService.Delete(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, gin.H{"message": "Folder and its notes deleted"})
}

func ListFolderNotesHandler(c *gin.Context) {
	notes, err := middleware.BackendFrom(c).ListFolderNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, notes)
}
