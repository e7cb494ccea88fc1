package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrevistaja/backend/internal/services"
	"github.com/entrevistaja/backend/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			// no profile yet is a normal state for a fresh account
			c.JSON(http.StatusOK, gin.H{"uid": userID, "profileCompleted": false})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
