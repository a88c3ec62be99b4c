package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"chronotes/middleware"
	"chronotes/model"
	"chronotes/utils"
)

var serverStart = time.Now()

func GetStatsHandler(c *gin.Context) {
	b := middleware.BackendFrom(c)
	ctx := c.Request.Context()

	folders, err := b.CountFolders(ctx)
	if err != nil {
		storeError(c, err)
		return
	}
	notes, err := b.CountNotes(ctx)
	if err != nil {
		storeError(c, err)
		return
	}

	utils.Success(c, model.Stats{
		Mode:          middleware.ModeFrom(c),
		FolderCount:   folders,
		NoteCount:     notes,
		UptimeSeconds: time.Since(serverStart).Seconds(),
		CPUPercent:    utils.GetCPUUsage(),
	})
}
