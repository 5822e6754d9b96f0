package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaultfs/vaultfs/internal/infrastructure/logging"
	"github.com/vaultfs/vaultfs/internal/infrastructure/monitoring"
	"github.com/vaultfs/vaultfs/internal/sandbox"
)

// Version is reported by the root endpoint.
const Version = "1.0.1"

// Handlers contains all HTTP handlers.
type Handlers struct {
	service *sandbox.Service
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandlers creates a new handler set.
func NewHandlers(service *sandbox.Service, logger *logging.Logger, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Root reports service metadata.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Filesystem API Server",
		"version":  Version,
		"base_dir": h.service.Root(),
		"metrics":  "/metrics",
	})
}

// Health reports whether the base directory currently exists.
func (h *Handlers) Health(c *gin.Context) {
	healthy := h.service.Healthy()
	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":          status,
		"base_dir":        h.service.Root(),
		"base_dir_exists": healthy,
	})
}

// DebugPath exposes the raw resolution result for an input path, an
// operational aid for diagnosing traversal and encoding edge cases.
func (h *Handlers) DebugPath(c *gin.Context) {
	input := c.Query("path")
	info, err := h.service.Inspect(input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": publicError(err), "input_path": input})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handlers) timer(op string) *monitoring.Timer {
	return monitoring.NewTimer(h.metrics, op)
}

// abort records the failure and writes the error response. Messages carry
// the caller-supplied relative path only; resolution details never leak.
func (h *Handlers) abort(c *gin.Context, op string, err error) {
	kind := sandbox.KindOf(err)
	h.metrics.RecordOperationError(op, string(kind))
	h.logger.Warn("operation failed",
		zap.String("operation", op),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	c.JSON(statusFor(err), gin.H{"error": publicError(err)})
}

// publicError is the response-body form of a failure. The wrapped cause
// carries resolved absolute paths, so it stays in the log.
func publicError(err error) string {
	var se *sandbox.Error
	if errors.As(err, &se) {
		return se.Message()
	}
	return err.Error()
}

// statusFor maps the failure taxonomy to HTTP statuses. An invalid path is a
// boundary violation and stays distinct from not-found.
func statusFor(err error) int {
	switch sandbox.KindOf(err) {
	case sandbox.KindInvalidPath, sandbox.KindNotADirectory, sandbox.KindNotAFile:
		return http.StatusBadRequest
	case sandbox.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
