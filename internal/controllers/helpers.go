package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskflow-be/internal/repository"
)

// resourceID parses the :id path parameter. On failure it writes a 400 and
// reports false.
func resourceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource id",
		})
		return 0, false
	}
	return id, true
}

// respondStoreError maps a repository failure to a response. Not-found and
// not-owned are the same 404; anything else is a logged 500 with a generic
// body.
func respondStoreError(c *gin.Context, resource string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": resource + " not found",
		})
		return
	}
	log.Printf("%s store error: %v", resource, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
	})
}

// emptyIfNil keeps empty list responses as [] instead of null
func emptyIfNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
