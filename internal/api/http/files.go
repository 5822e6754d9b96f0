package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// WriteFileRequest is the body of POST /files/content.
type WriteFileRequest struct {
	Path     string `json:"path" binding:"required"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// List enumerates a directory. An empty or missing path selects the base
// directory itself.
func (h *Handlers) List(c *gin.Context) {
	timer := h.timer("list")
	listing, err := h.service.List(c.Query("path"))
	if err != nil {
		timer.Stop("error")
		h.abort(c, "list", err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, listing)
}

// Describe returns metadata for one entry.
func (h *Handlers) Describe(c *gin.Context) {
	timer := h.timer("describe")
	entry, err := h.service.Describe(c.Query("path"))
	if err != nil {
		timer.Stop("error")
		h.abort(c, "describe", err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, entry)
}

// ReadContent returns file content as text, or with ?download=true the raw
// bytes under the original filename. A body that does not decode as text is
// answered with a structured binary hint, not an error.
func (h *Handlers) ReadContent(c *gin.Context) {
	path := c.Query("path")

	if c.Query("download") == "true" {
		timer := h.timer("download")
		loc, entry, err := h.service.OpenFile(path)
		if err != nil {
			timer.Stop("error")
			h.abort(c, "download", err)
			return
		}
		if entry.Size != nil {
			h.metrics.AddBytesRead(*entry.Size)
		}
		timer.Stop("ok")
		c.Header("Content-Type", "application/octet-stream")
		c.FileAttachment(loc.Abs(), entry.Name)
		return
	}

	timer := h.timer("read")
	content, hint, err := h.service.ReadText(path)
	if err != nil {
		timer.Stop("error")
		h.abort(c, "read", err)
		return
	}
	if hint != nil {
		timer.Stop("ok")
		c.JSON(http.StatusOK, gin.H{
			"error":        "binary file cannot be displayed as text",
			"mime_type":    hint.MimeType,
			"charset":      hint.Charset,
			"size":         hint.Size,
			"download_url": "/files/content?path=" + url.QueryEscape(path) + "&download=true",
		})
		return
	}
	h.metrics.AddBytesRead(int64(len(content.Content)))
	timer.Stop("ok")
	c.JSON(http.StatusOK, content)
}

// WriteContent writes text content, creating missing parent directories and
// overwriting unconditionally.
func (h *Handlers) WriteContent(c *gin.Context) {
	var req WriteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := h.timer("write")
	n, err := h.service.WriteText(req.Path, req.Content, req.Encoding)
	if err != nil {
		timer.Stop("error")
		h.abort(c, "write", err)
		return
	}
	h.metrics.AddBytesWritten(int64(n))
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{
		"message": "file " + req.Path + " written successfully",
		"size":    n,
	})
}

// Upload stores a multipart file payload byte-for-byte.
func (h *Handlers) Upload(c *gin.Context) {
	path := c.Query("path")
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required: " + err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	timer := h.timer("upload")
	n, err := h.service.Write(path, src)
	if err != nil {
		timer.Stop("error")
		h.abort(c, "upload", err)
		return
	}
	h.metrics.AddBytesWritten(n)
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{
		"message": "file " + path + " uploaded successfully",
		"size":    n,
	})
}
