package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/metrics"
	"github.com/tasktrail/tasktrail/internal/models"
)

// defaultTaskPageSize is the page size used when the limit parameter is
// absent or invalid.
const defaultTaskPageSize = 5

// TaskHandler serves task CRUD endpoints.
type TaskHandler struct {
	repo TaskRepository
	log  *logrus.Logger
}

// NewTaskHandler creates a TaskHandler with the given service and logger.
func NewTaskHandler(repo TaskRepository, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{repo: repo, log: log}
}

// List handles GET /api/v1/tasks.
func (h *TaskHandler) List(c *gin.Context) {
	opts := models.TaskQueryOpts{
		Query: c.Query("query"),
		Page:  parsePositiveInt(c.Query("page"), 1),
		Limit: parseLimit(c.Query("limit"), defaultTaskPageSize),
	}

	tasks, total, err := h.repo.ListTasks(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("listing tasks")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  tasks,
		"total": total,
		"page":  opts.Page,
		"limit": opts.Limit,
	})
}

// Get handles GET /api/v1/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.repo.GetTask(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "task not found")

			return
		}

		h.log.WithError(err).Error("getting task")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, task)
}

// Create handles POST /api/v1/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	task, err := h.repo.CreateTask(c.Request.Context(), req)
	if err != nil {
		if models.IsValidationError(err) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		h.log.WithError(err).Error("creating task")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	metrics.MutationsTotal.WithLabelValues(string(models.ActionCreateTask)).Inc()

	c.JSON(http.StatusCreated, task)
}

// Update handles PUT /api/v1/tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	task, err := h.repo.UpdateTask(c.Request.Context(), id, req)
	if err != nil {
		if models.IsValidationError(err) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		if errors.Is(err, models.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "task not found")

			return
		}

		h.log.WithError(err).Error("updating task")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	metrics.MutationsTotal.WithLabelValues(string(models.ActionUpdateTask)).Inc()

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/v1/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteTask(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "task not found")

			return
		}

		h.log.WithError(err).Error("deleting task")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	metrics.MutationsTotal.WithLabelValues(string(models.ActionDeleteTask)).Inc()

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
