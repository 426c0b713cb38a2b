package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type getDashboardResponse struct {
	TotalTasks     int64             `json:"total_tasks"`
	CompletedTasks int64             `json:"completed_tasks"`
	PendingTasks   int64             `json:"pending_tasks"`
	RecentNotes    []getNoteResponse `json:"recent_notes"`
}

func (h *handlerImpl) HandleGetDashboard(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboard.GetDashboard(c, identity)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to get dashboard")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, getDashboardResponse{
		TotalTasks:     dashboard.TotalTasks,
		CompletedTasks: dashboard.CompletedTasks,
		PendingTasks:   dashboard.PendingTasks,
		RecentNotes:    newGetNoteResponses(dashboard.RecentNotes),
	})
}
