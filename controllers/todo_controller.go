package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pashtetskiy/SimpleToDoWebApi/models"
	"github.com/pashtetskiy/SimpleToDoWebApi/repository"
)

// ToDoController translates HTTP requests into repository calls. It holds no
// persistence logic of its own: validation happens here, data access in the
// repository, and every storage failure maps to a 4xx response.
type ToDoController struct {
	tasks *repository.Repository[models.Task]
	log   *zap.SugaredLogger
}

func NewToDoController(db *gorm.DB, log *zap.SugaredLogger) *ToDoController {
	return &ToDoController{
		tasks: repository.New[models.Task](db, log),
		log:   log,
	}
}

// GetAll lists every task.
func (tc *ToDoController) GetAll(c *gin.Context) {
	tasks, err := tc.tasks.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetByID fetches a single task by its id.
func (tc *ToDoController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := tc.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch task"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// Search matches tasks whose title and description contain the supplied
// substrings. Both constraints are conjunctive; at least one must be given.
func (tc *ToDoController) Search(c *gin.Context) {
	title := c.Query("titleName")
	description := c.Query("description")
	if title == "" && description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "titleName or description is required"})
		return
	}

	var filter repository.Filter
	if title != "" {
		filter = append(filter, repository.Condition{Field: "title", Op: repository.OpContains, Value: title})
	}
	if description != "" {
		filter = append(filter, repository.Condition{Field: "description", Op: repository.OpContains, Value: description})
	}

	tasks, err := tc.tasks.FindWhere(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search failed"})
		return
	}
	if len(tasks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tasks found"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Incoming lists tasks whose expiry date falls inside the requested window.
// The filter defaults to "today" when absent but an explicitly empty value is
// rejected.
func (tc *ToDoController) Incoming(c *gin.Context) {
	name, supplied := c.GetQuery("filter")
	if supplied && name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must not be empty"})
		return
	}
	if !supplied {
		name = "today"
	}

	filter, ok := expiryWindow(name, time.Now().UTC())
	if !ok {
		// Unrecognized window names produce no predicate, hence no rows.
		c.JSON(http.StatusNotFound, gin.H{"error": "No tasks found"})
		return
	}

	tasks, err := tc.tasks.FindWhere(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	if len(tasks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tasks found"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// expiryWindow builds the expiry-date filter for the recognized window names,
// all computed against the current UTC date: today, nextday, and week (today
// through today+7 inclusive).
func expiryWindow(name string, now time.Time) (repository.Filter, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var from, to time.Time
	switch strings.ToLower(name) {
	case "today":
		from, to = today, today.AddDate(0, 0, 1)
	case "nextday":
		from, to = today.AddDate(0, 0, 1), today.AddDate(0, 0, 2)
	case "week":
		from, to = today, today.AddDate(0, 0, 8)
	default:
		return nil, false
	}

	return repository.Filter{
		{Field: "expiry_date", Op: repository.OpGte, Value: from},
		{Field: "expiry_date", Op: repository.OpLt, Value: to},
	}, true
}

// Create inserts a new task. The store assigns the id; percent and done state
// always start at zero regardless of the payload.
func (tc *ToDoController) Create(c *gin.Context) {
	var input models.CreateTaskRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		Title:           input.Title,
		Description:     input.Description,
		ExpiryDate:      input.ExpiryDate,
		PercentComplete: 0,
		IsDone:          false,
	}
	if err := tc.tasks.Add(c.Request.Context(), &task); err != nil {
		tc.log.Errorw("task create failed", "title", input.Title, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create task"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/ToDo/getById/%d", task.ID))
	c.JSON(http.StatusCreated, task)
}

// MarkAsComplete forces a task to 100 percent and done.
func (tc *ToDoController) MarkAsComplete(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := tc.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch task"})
		return
	}

	task.PercentComplete = 100
	task.IsDone = true
	if err := tc.tasks.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update task"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Update replaces title, description and expiry date of an existing task.
// Percent and done state are untouched.
func (tc *ToDoController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var input models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tc.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch task"})
		return
	}

	task.Title = input.Title
	task.Description = input.Description
	task.ExpiryDate = input.ExpiryDate
	if err := tc.tasks.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update task"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SetPercentComplete sets the task's progress. Reaching 100 marks the task
// done; dropping below 100 afterwards never clears the flag.
func (tc *ToDoController) SetPercentComplete(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	percent, err := strconv.Atoi(c.Query("percentComplete"))
	if err != nil || percent < 0 || percent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percentComplete must be between 0 and 100"})
		return
	}

	task, err := tc.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch task"})
		return
	}

	task.PercentComplete = percent
	if percent == 100 {
		task.IsDone = true
	}
	if err := tc.tasks.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update task"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes a task.
func (tc *ToDoController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := tc.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch task"})
		return
	}

	if err := tc.tasks.Remove(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete task"})
		return
	}
	c.Status(http.StatusNoContent)
}
