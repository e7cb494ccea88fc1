package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mongorepo "github.com/entrevistaja/backend/internal/repositories/mongo"
	"github.com/entrevistaja/backend/internal/utils"
)

// AdminHandler serves the support surface: looking up what the webhook
// processor has recorded about a subscription when a customer writes in.
type AdminHandler struct {
	billing mongorepo.BillingRepository
}

func NewAdminHandler(billing mongorepo.BillingRepository) *AdminHandler {
	return &AdminHandler{billing: billing}
}

func (h *AdminHandler) GetSubscription(c *gin.Context) {
	const op = "AdminHandler.GetSubscription"

	id := c.Param("id")
	if id == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "subscription id is required", nil))
		return
	}

	sub, err := h.billing.GetSubscription(c.Request.Context(), id)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to load subscription", err))
		return
	}
	if sub == nil {
		writeError(c, utils.E(utils.CodeNotFound, op, "subscription not found", nil))
		return
	}

	c.JSON(http.StatusOK, sub)
}
