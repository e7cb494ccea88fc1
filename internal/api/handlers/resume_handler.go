package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/resume"
	"github.com/entrevistaja/backend/internal/services"
	"github.com/entrevistaja/backend/internal/utils"
)

// ResumeHandler drives the per-user resume editor: loading it from the
// profile, applying edits, saving back, and exporting.
type ResumeHandler struct {
	editors  *resume.Store
	profiles services.ProfileService
	pdf      resume.PDFRenderer
}

func NewResumeHandler(editors *resume.Store, profiles services.ProfileService, pdf resume.PDFRenderer) *ResumeHandler {
	return &ResumeHandler{editors: editors, profiles: profiles, pdf: pdf}
}

type resumeResponse struct {
	Document models.ResumeDocument `json:"document"`
	State    resume.State          `json:"state"`
	Dirty    bool                  `json:"dirty"`
}

// Get returns the current editor document, hydrating it from the profile on
// first access. With ?reload=true a fresh load is attempted, which fails
// while unsaved edits exist.
func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	reload := c.Query("reload") == "true"
	email := userEmail(c)

	var resp resumeResponse
	err := h.editors.With(userID, func(ed *resume.Editor) error {
		if ed.State() == resume.StateIdle || reload {
			if err := h.loadFromProfile(c, ed, userID, email); err != nil {
				return err
			}
		}
		resp = resumeResponse{Document: ed.Document(), State: ed.State(), Dirty: ed.Dirty()}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) loadFromProfile(c *gin.Context, ed *resume.Editor, userID, email string) error {
	if err := ed.BeginLoad(); err != nil {
		return err
	}

	p, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil && !utils.IsCode(err, utils.CodeNotFound) {
		ed.FailLoad()
		return err
	}
	// missing profile hydrates an empty document
	return ed.CompleteLoad(resume.FromProfile(p, email))
}

// Put replaces the whole document with the client's edited version.
func (h *ResumeHandler) Put(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var doc models.ResumeDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Put", "invalid resume document", err))
		return
	}

	var resp resumeResponse
	err := h.editors.With(userID, func(ed *resume.Editor) error {
		if err := ed.Replace(doc); err != nil {
			return err
		}
		resp = resumeResponse{Document: ed.Document(), State: ed.State(), Dirty: ed.Dirty()}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Save persists the editor document as the user's profile.
func (h *ResumeHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	email := userEmail(c)

	var saved *models.UserProfile
	err := h.editors.With(userID, func(ed *resume.Editor) error {
		p, err := h.profiles.Save(c.Request.Context(), userID, email, ed.Document())
		if err != nil {
			return err
		}
		ed.MarkSaved()
		saved = p
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ApplySuggestions merges an analysis result into the editor document.
func (h *ResumeHandler) ApplySuggestions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var res models.AnalysisResult
	if err := c.ShouldBindJSON(&res); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.ApplySuggestions", "invalid analysis result", err))
		return
	}

	var resp resumeResponse
	err := h.editors.With(userID, func(ed *resume.Editor) error {
		ed.ApplyAnalysis(res)
		resp = resumeResponse{Document: ed.Document(), State: ed.State(), Dirty: ed.Dirty()}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export downloads the document as txt or pdf. Unsaved edits are included:
// the export reads the editor, not the stored profile.
func (h *ResumeHandler) Export(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "txt")

	var doc models.ResumeDocument
	err := h.editors.With(userID, func(ed *resume.Editor) error {
		if ed.State() == resume.StateIdle {
			return errors.New("no resume loaded")
		}
		doc = ed.Document()
		return nil
	})
	if err != nil {
		writeError(c, utils.E(utils.CodeConflict, "ResumeHandler.Export", "load the resume before exporting", err))
		return
	}

	switch format {
	case "txt":
		c.Header("Content-Disposition", `attachment; filename="curriculo.txt"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(resume.RenderText(doc)))
	case "pdf":
		if h.pdf == nil {
			writeError(c, utils.E(utils.CodeUnavailable, "ResumeHandler.Export", "pdf export is not configured", nil))
			return
		}
		pdfBytes, err := h.pdf.RenderPDF(c.Request.Context(), doc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="curriculo.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	default:
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Export", "format must be txt or pdf", nil))
	}
}
