package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// @Summary Background Job Status
// @Description Worker pool counters for monitoring
// @Tags Jobs
// @Produce json
// @Success 200 {object} jobs.WorkerStats
// @Security BearerAuth
// @Router /jobs/estado [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.GetStatus())
}
