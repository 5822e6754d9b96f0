package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultfs/vaultfs/internal/sandbox"
)

// CreateDirectoryRequest is the body of POST /directories.
type CreateDirectoryRequest struct {
	Path string `json:"path" binding:"required"`
}

// TransferRequest is the body of copy and move operations.
type TransferRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// CreateDirectory creates a directory and any missing ancestors; creating an
// existing directory succeeds.
func (h *Handlers) CreateDirectory(c *gin.Context) {
	var req CreateDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := h.timer("mkdir")
	if err := h.service.CreateDirectory(req.Path); err != nil {
		timer.Stop("error")
		h.abort(c, "mkdir", err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{
		"message": "directory " + req.Path + " created successfully",
	})
}

// Delete removes a file or a directory tree.
func (h *Handlers) Delete(c *gin.Context) {
	path := c.Query("path")

	timer := h.timer("delete")
	kind, err := h.service.Delete(path)
	if err != nil {
		timer.Stop("error")
		h.abort(c, "delete", err)
		return
	}
	timer.Stop("ok")
	noun := "file"
	if kind == sandbox.TypeDirectory {
		noun = "directory"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": noun + " " + path + " deleted successfully",
	})
}

// Copy copies a file or directory tree; directory copies merge into an
// existing destination.
func (h *Handlers) Copy(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := h.timer("copy")
	if err := h.service.Copy(req.Source, req.Destination); err != nil {
		timer.Stop("error")
		h.abort(c, "copy", err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{
		"message": "copied " + req.Source + " to " + req.Destination,
	})
}

// Move renames a file or directory, falling back to copy-then-delete across
// volume boundaries.
func (h *Handlers) Move(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := h.timer("move")
	if err := h.service.Move(req.Source, req.Destination); err != nil {
		timer.Stop("error")
		h.abort(c, "move", err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{
		"message": "moved " + req.Source + " to " + req.Destination,
	})
}
