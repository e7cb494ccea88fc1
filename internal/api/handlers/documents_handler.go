package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrevistaja/backend/internal/documents"
	"github.com/entrevistaja/backend/internal/utils"
)

const maxParseSize = 10 << 20 // 10 MiB

type DocumentsHandler struct{}

func NewDocumentsHandler() *DocumentsHandler { return &DocumentsHandler{} }

// Parse extracts plain text from an uploaded document so the frontend can
// prefill the editor from an existing resume file.
func (h *DocumentsHandler) Parse(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentsHandler.Parse", "missing multipart field 'file'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > maxParseSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentsHandler.Parse", "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "DocumentsHandler.Parse", "failed to open upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "DocumentsHandler.Parse", "failed to read upload", err))
		return
	}

	text, err := documents.ExtractText(data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text, "fileName": fh.Filename})
}
