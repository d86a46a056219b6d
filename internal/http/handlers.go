package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codequest/runbox/internal/executor"
	"github.com/codequest/runbox/internal/types"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	executor *executor.Executor
	version  string
}

// NewHandlers creates a new handler set.
func NewHandlers(exec *executor.Executor, version string) *Handlers {
	return &Handlers{executor: exec, version: version}
}

// Root handles the basic liveness check.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "runbox",
		"version": h.version,
	})
}

// Health handles the detailed health check.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"languages":       []string{types.LanguageJavaScript},
		"slots_available": h.executor.AvailableSlots(),
	})
}

// Execute runs one submission and returns the normalized result.
func (h *Handlers) Execute(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), &req)
	if err != nil {
		if executor.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
