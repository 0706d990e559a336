package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-be/internal/entities"
	"taskflow-be/internal/middleware"
	"taskflow-be/internal/models"
	"taskflow-be/internal/repository"
)

type NoteController struct {
	repo repository.OwnedStore[entities.Note]
}

func NewNoteController(repo repository.OwnedStore[entities.Note]) *NoteController {
	return &NoteController{repo: repo}
}

// Create handles POST /notes
func (nc *NoteController) Create(c *gin.Context) {
	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	note, err := nc.repo.Create(c.Request.Context(), user.ID, req.Fields())
	if err != nil {
		respondStoreError(c, "Note", err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// List handles GET /notes
func (nc *NoteController) List(c *gin.Context) {
	var query models.NoteListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	notes, err := nc.repo.List(c.Request.Context(), user.ID, query.Filter())
	if err != nil {
		respondStoreError(c, "Note", err)
		return
	}

	c.JSON(http.StatusOK, emptyIfNil(notes))
}

// Get handles GET /notes/:id
func (nc *NoteController) Get(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	note, err := nc.repo.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondStoreError(c, "Note", err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// Update handles PUT /notes/:id
func (nc *NoteController) Update(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	note, err := nc.repo.Update(c.Request.Context(), user.ID, id, req.Changes())
	if err != nil {
		respondStoreError(c, "Note", err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// Delete handles DELETE /notes/:id
func (nc *NoteController) Delete(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := nc.repo.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondStoreError(c, "Note", err)
		return
	}

	c.Status(http.StatusNoContent)
}
