package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/dto"
	"github.com/comfy-credits/backend/internal/middleware"
)

// CreditsHandler handles credit balance, history and adjustment requests.
type CreditsHandler struct {
	creditService portssvc.CreditSvcFacade
}

// NewCreditsHandler creates a new CreditsHandler.
func NewCreditsHandler(cs portssvc.CreditSvcFacade) *CreditsHandler {
	return &CreditsHandler{creditService: cs}
}

// registerCreditsRoutes sets up authenticated credit routes.
func registerCreditsRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := NewCreditsHandler(creditService)
	rg.GET("/credits", h.GetMyCreditHistory)
}

// registerAdminCreditsRoutes sets up admin-only credit routes.
func registerAdminCreditsRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := NewCreditsHandler(creditService)
	rg.POST("/users/:id/credits", h.AdjustUserCredits)
	rg.GET("/users/:id/credits", h.GetUserCreditHistory)
}

// GetMyCreditHistory returns the caller's balance and a page of ledger entries.
func (h *CreditsHandler) GetMyCreditHistory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	h.respondWithHistory(c, userID)
}

// GetUserCreditHistory returns the audit trail for an arbitrary user (admin only).
func (h *CreditsHandler) GetUserCreditHistory(c *gin.Context) {
	h.respondWithHistory(c, c.Param("id"))
}

func (h *CreditsHandler) respondWithHistory(c *gin.Context, userID string) {
	var params dto.ListCreditEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	balance, err := h.creditService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, nextToken, err := h.creditService.ListEntries(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditHistoryResponse(balance, entries, nextToken))
}

// AdjustUserCredits applies an admin balance correction to the target user.
func (h *CreditsHandler) AdjustUserCredits(c *gin.Context) {
	var req dto.AdminAdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	actor, ok := middleware.GetAdminUserFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
		return
	}

	newBalance, err := h.creditService.AdminAdjustCredits(c.Request.Context(), c.Param("id"), req.Amount, req.Description, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminAdjustCreditsResponse{Success: true, NewBalance: newBalance})
}
