package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DocumentOpener reads stored documents by key. The file system storage
// backend implements it; S3-backed deployments serve presigned URLs instead
// and never mount this handler.
type DocumentOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// DocumentHandler serves locally stored invoice documents
type DocumentHandler struct {
	BaseHandler
	documents DocumentOpener
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documents DocumentOpener) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
	}
}

// Download godoc
// @ID           downloadDocument
// @Summary      Download a stored document
// @Description  Streams a stored invoice PDF by its storage key
// @Tags         documents
// @Produce      application/pdf
// @Param        key path string true "Document storage key"
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{key} [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		h.BadRequest(c, "Document key is required")
		return
	}

	reader, err := h.documents.Open(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filenameFromKey(key)+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

// filenameFromKey extracts the final path element of a storage key
func filenameFromKey(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}
