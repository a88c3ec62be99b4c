package handler

import (
	"github.com/gin-gonic/gin"

	"chronotes/dto"
	"chronotes/middleware"
	"chronotes/model"
	"chronotes/store"
	"chronotes/usecase"
	"chronotes/utils"
)

func ListNotesHandler(c *gin.Context) {
	notes, err := middleware.BackendFrom(c).ListNotes(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, notes)
}

func SearchNotesHandler(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		utils.BadRequest(c, "Search query must be at least 2 characters")
		return
	}

	notes, err := middleware.BackendFrom(c).SearchNotes(c.Request.Context(), query)
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, notes)
}

func GetNoteHandler(c *gin.Context) {
	note, err := middleware.BackendFrom(c).GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, note)
}

func CreateNoteHandler(c *gin.Context, noteService *usecase.NoteService) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := noteService.Create(c.Request.Context(), middleware.BackendFrom(c), model.Note{
		FolderID: req.FolderID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	middleware.NoteOperationsTotal.WithLabelValues("create", middleware.ModeFrom(c)).Inc()
	utils.Created(c, note)
}

func UpdateNoteHandler(c *gin.Context, noteService *usecase.NoteService) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := noteService.Update(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"), store.NoteUpdate{
		FolderID: req.FolderID,
		Title:    req.Title,
		Tags:     req.Tags,
	})
	if err != nil {
		storeError(c, err)
		return
	}

	middleware.NoteOperationsTotal.WithLabelValues("update", middleware.ModeFrom(c)).Inc()
	utils.Success(c, note)
}

// SaveNoteContentHandler commits the content, then reports a snapshot
// failure (authenticated mode only) as a warning on an otherwise successful
// response.
func SaveNoteContentHandler(c *gin.Context, noteService *usecase.NoteService) {
	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	outcome, err := noteService.SaveContent(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"), req.Content)
	if err != nil {
		storeError(c, err)
		return
	}

	middleware.NoteOperationsTotal.WithLabelValues("save", middleware.ModeFrom(c)).Inc()
	if outcome.SnapshotErr != nil {
		utils.SuccessWithWarning(c, outcome.Note, outcome.SnapshotErr.Error())
		return
	}
	utils.Success(c, outcome.Note)
}

func SetNotePriorityHandler(c *gin.Context, noteService *usecase.NoteService) {
	var req dto.SetPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Priority must be high, medium or low")
		return
	}

	note, err := noteService.SetPriority(c.Request.Context(), middleware.BackendFrom(c),
		c.Param("id"), model.Priority(req.Priority))
	if err != nil {
		storeError(c, err)
		return
	}

	middleware.NoteOperationsTotal.WithLabelValues("priority", middleware.ModeFrom(c)).Inc()
	utils.Success(c, note)
}

func MarkNoteReviewedHandler(c *gin.Context, noteService *usecase.NoteService) {
	note, err := noteService.MarkReviewed(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}

	middleware.NoteOperationsTotal.WithLabelValues("review", middleware.ModeFrom(c)).Inc()
	utils.Success(c, note)
}

// DeleteNoteHandler requires ?confirm=true before destroying the note.
func DeleteNoteHandler(c *gin.Context, noteService *usecase.NoteService) {
	if c.Query("confirm") != "true" {
		utils.BadRequest(c, "Note deletion must be confirmed with confirm=true")
		return
	}

	err := noteService.Delete(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}

	middleware.NoteOperationsTotal.WithLabelValues("delete", middleware.ModeFrom(c)).Inc()
	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}

func NoteHistoryHandler(c *gin.Context) {
	historian, ok := middleware.BackendFrom(c).(store.Historian)
	if !ok {
		utils.BadRequest(c, "History is not available for guest sessions")
		return
	}

	snaps, err := historian.ListSnapshots(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, snaps)
}
