package teams

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/aura-scheduling/backend/internal/middleware"
	"github.com/aura-scheduling/backend/internal/models"
	"github.com/aura-scheduling/backend/pkg/response"
)

// Store is the read side the teams handler needs.
type Store interface {
	ListTeamsForUser(ctx context.Context, userID int) ([]MyTeam, error)
	AdminTeamIDs(ctx context.Context, userID int) ([]int, error)
}

// Handler handles team HTTP endpoints.
type Handler struct {
	repo Store
}

// NewHandler creates a teams handler.
func NewHandler(repo Store) *Handler {
	return &Handler{repo: repo}
}

// MyTeamsResponse is the body of GET /teams. AdminTeamIDs are the ids usable as a teamIds filter
// that widen the booking list.
type MyTeamsResponse struct {
	Teams        []MyTeam `json:"teams"`
	AdminTeamIDs []int    `json:"adminTeamIds"`
}

// ListMyTeams handles GET /teams. Returns teams the current user is a member of.
func (h *Handler) ListMyTeams(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(int)
	list, err := h.repo.ListTeamsForUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load teams")
		return
	}
	admin, err := h.repo.AdminTeamIDs(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load teams")
		return
	}
	if list == nil {
		list = []MyTeam{}
	}
	for i := range list {
		list[i].Admin = list[i].Accepted && models.IsAdminRole(list[i].Role)
	}
	if admin == nil {
		admin = []int{}
	}
	response.OK(c, MyTeamsResponse{Teams: list, AdminTeamIDs: admin})
}
