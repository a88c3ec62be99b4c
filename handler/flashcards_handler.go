package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"chronotes/middleware"
	"chronotes/services"
	"chronotes/store"
	"chronotes/usecase"
	"chronotes/utils"
)

// ParsedFlashcardsHandler extracts cards from the note's delimiter syntax.
// Derived data only; nothing is written.
func ParsedFlashcardsHandler(c *gin.Context, flashcardService *usecase.FlashcardService) {
	cards, err := flashcardService.Parsed(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, cards)
}

func GenerateFlashcardsHandler(c *gin.Context, flashcardService *usecase.FlashcardService) {
	cards, err := flashcardService.Generate(c.Request.Context(), middleware.BackendFrom(c), c.Param("id"))
	if err != nil {
		middleware.FlashcardGenerationsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		if errors.Is(err, services.ErrGeneratorDisabled) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.BadGateway(c, err.Error())
		return
	}

	middleware.FlashcardGenerationsTotal.WithLabelValues("success").Inc()
	utils.Success(c, cards)
}

func ListFlashcardsHandler(c *gin.Context) {
	fs, ok := middleware.BackendFrom(c).(store.FlashcardStore)
	if !ok {
		utils.BadRequest(c, "Saved flashcards are not available for guest sessions")
		return
	}

	var err error
	var cards interface{}
	if noteID := c.Query("note_id"); noteID != "" {
		cards, err = fs.ListFlashcards(c.Request.Context(), noteID)
	} else {
		cards, err = fs.ListAllFlashcards(c.Request.Context())
	}
	if err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, cards)
}

func DeleteFlashcardHandler(c *gin.Context) {
	fs, ok := middleware.BackendFrom(c).(store.FlashcardStore)
	if !ok {
		utils.BadRequest(c, "Saved flashcards are not available for guest sessions")
		return
	}

	if err := fs.DeleteFlashcard(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	utils.Success(c, gin.H{"message": "Flashcard deleted successfully"})
}
