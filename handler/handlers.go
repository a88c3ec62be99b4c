package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"chronotes/store"
	"chronotes/utils"
)

// storeError maps a backend failure onto the response helpers. Anything that
// is not a missing resource is reported as the operation error it is; the
// middleware has already counted it.
func storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(c, "Resource not found")
		return
	}
	utils.InternalError(c, err.Error())
}
