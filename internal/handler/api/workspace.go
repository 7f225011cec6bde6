package api

import (
	"errors"
	"net/http"

	resdto "coworkhub/internal/handler/dto/response"
	"coworkhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceHandler struct {
	workspaceQueries queries.WorkspaceQueries
}

func NewWorkspaceHandler(workspaceQueries queries.WorkspaceQueries) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceQueries: workspaceQueries,
	}
}

// @Summary List workspaces
// @Description List bookable workspaces with their hourly rates
// @Tags workspaces
// @Produce json
// @Success 200 {array} resdto.WorkspaceResponse
// @Router /workspaces [get]
func (h *WorkspaceHandler) List(c *gin.Context) {
	views, err := h.workspaceQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.WorkspaceResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromWorkspaceView(view)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get workspace
// @Description Get a workspace by ID
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {object} resdto.WorkspaceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id} [get]
func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid workspace ID format",
		})
		return
	}

	view, err := h.workspaceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrWorkspaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Workspace not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromWorkspaceView(view))
}
