package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/dto"
	"github.com/comfy-credits/backend/internal/middleware"
)

// WorkflowHandler handles workflow listing, runs and admin CRUD.
type WorkflowHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(ws portssvc.WorkflowSvcFacade) *WorkflowHandler {
	return &WorkflowHandler{workflowService: ws}
}

// registerWorkflowRoutes sets up authenticated workflow routes.
func registerWorkflowRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := NewWorkflowHandler(workflowService)
	rg.GET("/workflows", h.ListActiveWorkflows)
	rg.POST("/workflows/:id/run", h.RunWorkflow)
}

// registerAdminWorkflowRoutes sets up admin-only workflow routes.
func registerAdminWorkflowRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := NewWorkflowHandler(workflowService)
	rg.GET("/workflows", h.ListAllWorkflows)
	rg.POST("/workflows", h.CreateWorkflow)
	rg.PATCH("/workflows/:id", h.UpdateWorkflow)
}

// ListActiveWorkflows returns the workflows available to run.
func (h *WorkflowHandler) ListActiveWorkflows(c *gin.Context) {
	workflows, err := h.workflowService.ListWorkflows(c.Request.Context(), false)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkflowsResponse(workflows))
}

// ListAllWorkflows returns every workflow, inactive ones included (admin only).
func (h *WorkflowHandler) ListAllWorkflows(c *gin.Context) {
	workflows, err := h.workflowService.ListWorkflows(c.Request.Context(), true)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkflowsResponse(workflows))
}

// RunWorkflow debits the workflow's cost from the caller and records the run.
func (h *WorkflowHandler) RunWorkflow(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	run, newBalance, err := h.workflowService.RunWorkflow(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RunWorkflowResponse{
		Success:      true,
		RunID:        run.RunID,
		CreditsSpent: run.CreditsSpent,
		NewBalance:   newBalance,
	})
}

// CreateWorkflow creates a new workflow definition (admin only).
func (h *WorkflowHandler) CreateWorkflow(c *gin.Context) {
	var req dto.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	workflow, err := h.workflowService.CreateWorkflow(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkflowResponse(workflow))
}

// UpdateWorkflow applies a partial update to a workflow (admin only).
func (h *WorkflowHandler) UpdateWorkflow(c *gin.Context) {
	var req dto.UpdateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	workflow, err := h.workflowService.UpdateWorkflow(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkflowResponse(workflow))
}
