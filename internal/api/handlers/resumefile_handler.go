package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/entrevistaja/backend/internal/services"
	"github.com/entrevistaja/backend/internal/utils"
)

var resumeFileTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ResumeFileHandler struct {
	svc services.ResumeFileService
}

func NewResumeFileHandler(svc services.ResumeFileService) *ResumeFileHandler {
	return &ResumeFileHandler{svc: svc}
}

func (h *ResumeFileHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeFileHandler.Upload", "missing multipart field 'file'", err))
		return
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mimeType, allowed := resumeFileTypes[ext]
	if !allowed {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeFileHandler.Upload", "only .pdf, .doc and .docx are allowed", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ResumeFileHandler.Upload", "failed to open upload", err))
		return
	}
	defer file.Close()

	// PDFs get their magic bytes checked; Office formats are zip or OLE
	// containers that DetectContentType cannot tell apart, so the extension
	// decides for those.
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	if ext == ".pdf" && http.DetectContentType(head) != "application/pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeFileHandler.Upload", "file is not a valid pdf", nil))
		return
	}

	r := &readJoin{a: bytes.NewReader(head), b: file}

	row, err := h.svc.Upload(c.Request.Context(), userID, fh.Filename, mimeType, int(fh.Size), r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (h *ResumeFileHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
