package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"chronotes/dto"
	"chronotes/utils"
)

var markdown = goldmark.New()

// RenderMarkdownHandler converts note markdown to HTML for the preview
// pane.
func RenderMarkdownHandler(c *gin.Context) {
	var req dto.MarkdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(req.Content), &buf); err != nil {
		utils.BadRequest(c, "Failed to render markdown")
		return
	}

	utils.Success(c, gin.H{"html": buf.String()})
}
