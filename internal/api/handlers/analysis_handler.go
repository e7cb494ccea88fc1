package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrevistaja/backend/internal/match"
	"github.com/entrevistaja/backend/internal/resume"
	"github.com/entrevistaja/backend/internal/utils"
)

type AnalysisHandler struct {
	orchestrator *match.Orchestrator
	editors      *resume.Store
}

func NewAnalysisHandler(orchestrator *match.Orchestrator, editors *resume.Store) *AnalysisHandler {
	return &AnalysisHandler{orchestrator: orchestrator, editors: editors}
}

type analyzeRequest struct {
	// ResumeText is optional; when absent the current editor document is
	// rendered and analyzed, unsaved edits included.
	ResumeText string `json:"resumeText"`
	JobText    string `json:"jobText"`
	// Apply merges the returned suggestions straight into the editor.
	Apply bool `json:"apply"`
}

// Analyze scores the current editor document against a job description.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AnalysisHandler.Analyze", "invalid request body", err))
		return
	}

	resumeText := req.ResumeText
	if resumeText == "" {
		err := h.editors.With(userID, func(ed *resume.Editor) error {
			if ed.State() == resume.StateIdle {
				return utils.E(utils.CodeConflict, "AnalysisHandler.Analyze", "load the resume before analyzing", nil)
			}
			resumeText = resume.RenderText(ed.Document())
			return nil
		})
		if err != nil {
			writeError(c, err)
			return
		}
	}

	analysis, err := h.orchestrator.Analyze(c.Request.Context(), userID, resumeText, req.JobText)
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Apply {
		if err := h.editors.With(userID, func(ed *resume.Editor) error {
			ed.ApplyAnalysis(analysis.AnalysisResult)
			return nil
		}); err != nil {
			writeError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, analysis)
}
