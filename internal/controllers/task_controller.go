package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-be/internal/entities"
	"taskflow-be/internal/middleware"
	"taskflow-be/internal/models"
	"taskflow-be/internal/repository"
)

type TaskController struct {
	repo repository.OwnedStore[entities.Task]
}

func NewTaskController(repo repository.OwnedStore[entities.Task]) *TaskController {
	return &TaskController{repo: repo}
}

// Create handles POST /tasks
func (tc *TaskController) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	task, err := tc.repo.Create(c.Request.Context(), user.ID, req.Fields())
	if err != nil {
		respondStoreError(c, "Task", err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List handles GET /tasks
func (tc *TaskController) List(c *gin.Context) {
	var query models.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	tasks, err := tc.repo.List(c.Request.Context(), user.ID, query.Filter())
	if err != nil {
		respondStoreError(c, "Task", err)
		return
	}

	c.JSON(http.StatusOK, emptyIfNil(tasks))
}

// Get handles GET /tasks/:id
func (tc *TaskController) Get(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	task, err := tc.repo.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondStoreError(c, "Task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update handles PUT /tasks/:id
func (tc *TaskController) Update(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	task, err := tc.repo.Update(c.Request.Context(), user.ID, id, req.Changes())
	if err != nil {
		respondStoreError(c, "Task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id
func (tc *TaskController) Delete(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := tc.repo.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondStoreError(c, "Task", err)
		return
	}

	c.Status(http.StatusNoContent)
}
