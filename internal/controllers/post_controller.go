package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-be/internal/entities"
	"taskflow-be/internal/middleware"
	"taskflow-be/internal/models"
	"taskflow-be/internal/repository"
)

type PostController struct {
	repo repository.OwnedStore[entities.Post]
}

func NewPostController(repo repository.OwnedStore[entities.Post]) *PostController {
	return &PostController{repo: repo}
}

// Create handles POST /posts
func (pc *PostController) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	post, err := pc.repo.Create(c.Request.Context(), user.ID, req.Fields())
	if err != nil {
		respondStoreError(c, "Post", err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List handles GET /posts
func (pc *PostController) List(c *gin.Context) {
	var query models.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	posts, err := pc.repo.List(c.Request.Context(), user.ID, query.Filter())
	if err != nil {
		respondStoreError(c, "Post", err)
		return
	}

	c.JSON(http.StatusOK, emptyIfNil(posts))
}

// Get handles GET /posts/:id. Viewing a post bumps its view counter in the
// same statement that fetches it, so the returned count reflects this view.
func (pc *PostController) Get(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	post, err := pc.repo.GetAndIncrement(c.Request.Context(), user.ID, id, "view_count")
	if err != nil {
		respondStoreError(c, "Post", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update handles PUT /posts/:id
func (pc *PostController) Update(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	post, err := pc.repo.Update(c.Request.Context(), user.ID, id, req.Changes())
	if err != nil {
		respondStoreError(c, "Post", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id
func (pc *PostController) Delete(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := pc.repo.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondStoreError(c, "Post", err)
		return
	}

	c.Status(http.StatusNoContent)
}
