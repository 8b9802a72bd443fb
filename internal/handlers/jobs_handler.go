package handlers

import (
	cr "github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/scheduler"
)

// JobsHandler lets an admin fire a registered periodic task out of schedule.
type JobsHandler struct {
	sched *scheduler.Scheduler
}

func NewJobsHandler(sched *scheduler.Scheduler) *JobsHandler {
	return &JobsHandler{sched: sched}
}

// POST /admin/jobs/:name/run
func (h *JobsHandler) Run(c *gin.Context) {
	name := c.Param("name")

	ran, err := h.sched.Trigger(name)
	if cr.Is(err, scheduler.ErrUnknownTask) {
		httperr.NotFound(c, "task_not_found", "no task named "+name)
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"task": name, "ran": ran})
}
